package sources

import "errors"

// ErrSourceClosed is returned by Err when the source was stopped with Close.
var ErrSourceClosed = errors.New("source closed")

const (
	// DefaultBufferSize is the default channel buffer size for lines.
	DefaultBufferSize = 1024

	// DefaultMaxLineBytes is the default maximum size of a single line.
	DefaultMaxLineBytes = 64 * 1024
)

// Config holds tunables shared by every source.
type Config struct {
	BufferSize   int
	MaxLineBytes int
}

func (c Config) withDefaults() Config {
	if c.BufferSize <= 0 {
		c.BufferSize = DefaultBufferSize
	}
	if c.MaxLineBytes <= 0 {
		c.MaxLineBytes = DefaultMaxLineBytes
	}
	return c
}

// LineSource is a stream of raw newline-terminated lines (serial board,
// file, stdin, MQTT topic).
//
// Lines is closed when the source stops. Err then tells why: io.EOF when the
// input ended, ErrSourceClosed after Close, any other error when reading
// failed.
type LineSource interface {
	Lines() <-chan string
	Err() error
	Close() error
	Name() string
}
