// Package yaml loads imgseed run settings from YAML files.
package yaml

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/fwojciec/imgseed"
	"gopkg.in/yaml.v3"
)

// LoadConfig reads run settings from path. Durations use Go syntax ("3s",
// "500ms"). Fields left out keep their zero value and should be filled with
// imgseed.Config.Merge. Unknown keys are rejected.
func LoadConfig(path string) (*imgseed.Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, imgseed.Errorf(imgseed.ENOTFOUND, "config file not found: %s", path)
	} else if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

// ParseConfig decodes run settings from YAML bytes. Empty input yields a
// zero Config.
func ParseConfig(data []byte) (*imgseed.Config, error) {
	var cfg imgseed.Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, imgseed.Errorf(imgseed.EINVALID, "invalid config: %v", err)
	}

	if cfg.Settle < 0 || cfg.ShareSettle < 0 || cfg.Delay < 0 || cfg.Timeout < 0 {
		return nil, imgseed.Errorf(imgseed.EINVALID, "invalid config: durations must not be negative")
	}
	return &cfg, nil
}
