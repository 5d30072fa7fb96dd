package imgseed

import (
	"encoding/hex"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// illegalFilenameChars are removed from item names before they become file names.
const illegalFilenameChars = `<>:"/\|?*`

// Sanitize turns an item name into a safe file name by removing characters
// that are illegal in file paths and trimming surrounding whitespace.
// The result may be empty.
func Sanitize(name string) string {
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(illegalFilenameChars, r) {
			return -1
		}
		return r
	}, name)
	return strings.TrimSpace(name)
}

// DefaultExtension is used when the asset URL carries no recognized extension.
const DefaultExtension = ".jpg"

// ExtensionFromURL infers the file extension of an asset from its URL.
// Checks are substring based and ordered: .png, .webp, .gif, then DefaultExtension.
func ExtensionFromURL(u string) string {
	for _, ext := range []string{".png", ".webp", ".gif"} {
		if strings.Contains(u, ext) {
			return ext
		}
	}
	return DefaultExtension
}

var sizeSegment = regexp.MustCompile(`/\d+x\d*/`)

// HighResURL rewrites a sized asset URL to request the original upload by
// replacing every /<width>x<height?>/ path segment with /originals/.
// URLs without a size segment are returned unchanged.
func HighResURL(u string) string {
	return sizeSegment.ReplaceAllString(u, "/originals/")
}

// FileDigest returns the hex-encoded xxHash of the file at path.
func FileDigest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
