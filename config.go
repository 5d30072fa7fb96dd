package imgseed

import "time"

// DefaultUserAgent is a realistic desktop Chrome user agent sent by both the
// browser and the asset fetcher.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Config holds tunable run settings. Zero values mean "use the default".
//
// Settle is applied by the Session after every navigation. ShareSettle is an
// additional wait on share-link pages, which render their image later.
// Timeout bounds each page load and each image download.
type Config struct {
	UserAgent       string        `yaml:"user_agent"`
	OverlaySelector string        `yaml:"overlay_selector"`
	Settle          time.Duration `yaml:"settle"`
	ShareSettle     time.Duration `yaml:"share_settle"`
	Delay           time.Duration `yaml:"delay"`
	Timeout         time.Duration `yaml:"timeout"`
}

// DefaultConfig returns the settings observed to work against both providers.
func DefaultConfig() Config {
	return Config{
		UserAgent:       DefaultUserAgent,
		OverlaySelector: ".VHreRh.cLlqFI.XjRT60",
		Settle:          3 * time.Second,
		ShareSettle:     2 * time.Second,
		Delay:           1 * time.Second,
		Timeout:         30 * time.Second,
	}
}

// Merge returns c with zero fields filled from defaults.
func (c Config) Merge(defaults Config) Config {
	if c.UserAgent == "" {
		c.UserAgent = defaults.UserAgent
	}
	if c.OverlaySelector == "" {
		c.OverlaySelector = defaults.OverlaySelector
	}
	if c.Settle == 0 {
		c.Settle = defaults.Settle
	}
	if c.ShareSettle == 0 {
		c.ShareSettle = defaults.ShareSettle
	}
	if c.Delay == 0 {
		c.Delay = defaults.Delay
	}
	if c.Timeout == 0 {
		c.Timeout = defaults.Timeout
	}
	return c
}
