// Package fs reads manifests and writes run artifacts on the local filesystem.
package fs

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/fwojciec/imgseed"
)

// ReadManifest loads the items of a JSON manifest. The manifest is an array
// of {"name","image"} objects; item fields are validated per item during the
// run, not here.
func ReadManifest(path string) ([]imgseed.Item, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, imgseed.Errorf(imgseed.ENOTFOUND, "manifest not found: %s", path)
	} else if err != nil {
		return nil, err
	}

	var items []imgseed.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, imgseed.Errorf(imgseed.EINVALID, "invalid manifest %s: %v", path, err)
	}
	return items, nil
}

// PrepareOutputDir creates dir if needed and returns its absolute path.
func PrepareOutputDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return "", err
	}
	return abs, nil
}
