package render

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Option is a functional option for configuring an Engine via New.
type Option func(*engineConfig)

type engineConfig struct {
	producer  string
	compress  bool
	timestamp time.Time
	logger    *log.Logger
}

// WithProducer sets the Producer entry of the document information dictionary.
func WithProducer(producer string) Option {
	return func(c *engineConfig) {
		c.producer = producer
	}
}

// WithCompression enables or disables Flate compression of page content.
func WithCompression(compress bool) Option {
	return func(c *engineConfig) {
		c.compress = compress
	}
}

// WithTimestamp sets the creation and modification dates stamped into every
// document. The zero time selects canvas.DefaultTimestamp.
func WithTimestamp(ts time.Time) Option {
	return func(c *engineConfig) {
		c.timestamp = ts
	}
}

// WithLogger sets the logger render events are written to at debug level.
func WithLogger(l *log.Logger) Option {
	return func(c *engineConfig) {
		c.logger = l
	}
}

func defaultConfig() *engineConfig {
	return &engineConfig{
		producer: "docstamp",
		compress: true,
		logger:   log.New(io.Discard),
	}
}
