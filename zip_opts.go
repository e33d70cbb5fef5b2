package bundle

import "log/slog"

// DefaultMaxEntries is the default limit used when no ZipWithMaxEntries option is set.
const DefaultMaxEntries = 200_000

// zipConfig holds configuration for ReadZip and OpenZip.
type zipConfig struct {
	logger           *slog.Logger
	maxEntries       int
	decoderMaxMemory uint64
}

func (c *zipConfig) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.logger
}

func (c *zipConfig) limit() int {
	if c.maxEntries == 0 {
		return DefaultMaxEntries
	}
	return c.maxEntries
}

// ZipOption configures ReadZip and OpenZip.
type ZipOption func(*zipConfig)

// ZipWithLogger sets the logger used while importing archive members.
// If not set, logging is disabled.
func ZipWithLogger(logger *slog.Logger) ZipOption {
	return func(c *zipConfig) {
		c.logger = logger
	}
}

// ZipWithMaxEntries limits the number of file entries imported.
// Zero uses DefaultMaxEntries. Negative means no limit.
func ZipWithMaxEntries(n int) ZipOption {
	return func(c *zipConfig) {
		c.maxEntries = n
	}
}

// ZipWithDecoderMaxMemory caps the memory a zstd-compressed member may
// allocate while decoding. Zero applies no limit.
func ZipWithDecoderMaxMemory(n uint64) ZipOption {
	return func(c *zipConfig) {
		c.decoderMaxMemory = n
	}
}
