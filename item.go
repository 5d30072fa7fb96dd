package imgseed

import "unicode/utf8"

// Item is one manifest entry: a display name and the page that shows its image.
type Item struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// Validate returns an error if the item contains invalid fields.
func (i *Item) Validate() error {
	if i.Name == "" {
		return Errorf(EINVALID, "item name required")
	}
	if i.Image == "" {
		return Errorf(EINVALID, "item image URL required")
	}
	return nil
}

// Status is the terminal state of an item after processing.
type Status string

// Status values.
const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Outcome is the result of processing exactly one Item.
type Outcome struct {
	Item   Item
	Status Status

	// Set on success.
	Path   string
	Size   int64
	Digest string

	// Set on failure. Reason is an error code (ENOTFOUND, EHTTP, ...).
	Reason  string
	Message string
}

// MaxMessageLen is the maximum number of runes kept from a failure message.
const MaxMessageLen = 100

// Succeeded returns a success outcome for the item.
func Succeeded(item Item, path string, size int64, digest string) *Outcome {
	return &Outcome{
		Item:   item,
		Status: StatusSuccess,
		Path:   path,
		Size:   size,
		Digest: digest,
	}
}

// Failed returns a failure outcome for the item. The reason is taken from the
// error code and the message is truncated to MaxMessageLen runes.
func Failed(item Item, err error) *Outcome {
	return &Outcome{
		Item:    item,
		Status:  StatusFailure,
		Reason:  ErrorCode(err),
		Message: Truncate(ErrorMessage(err), MaxMessageLen),
	}
}

// Truncate shortens s to at most n runes.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
