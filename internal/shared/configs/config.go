package configs

import "time"

const (
	SourceSerial = "serial"
	SourceReader = "reader"
	SourceMQTT   = "mqtt"

	EmitModeLine     = "line"
	EmitModeInterval = "interval"
)

// Config holds all configuration for the application.
type Config struct {
	Log    LogConfig    `mapstructure:"log" validate:"required"`
	Source SourceConfig `mapstructure:"source" validate:"required"`
	Window WindowConfig `mapstructure:"window" validate:"required"`
	Emit   EmitConfig   `mapstructure:"emit" validate:"required"`
	Sink   SinkConfig   `mapstructure:"sink" validate:"required"`
	Server ServerConfig `mapstructure:"server"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=trace debug info warn error"`
}

// SourceConfig selects and configures the line source.
type SourceConfig struct {
	Kind         string       `mapstructure:"kind" validate:"required,oneof=serial reader mqtt"`
	MaxLineBytes int          `mapstructure:"max_line_bytes" validate:"min=64"`
	BufferSize   int          `mapstructure:"buffer_size" validate:"min=1"`
	Serial       SerialConfig `mapstructure:"serial"`
	Reader       ReaderConfig `mapstructure:"reader"`
	MQTT         MQTTConfig   `mapstructure:"mqtt"`
}

// SerialConfig holds the serial port parameters (always 8N1).
type SerialConfig struct {
	Device   string `mapstructure:"device"`
	BaudRate int    `mapstructure:"baud_rate" validate:"omitempty,min=300"`
}

// ReaderConfig reads lines from a file, or stdin when Path is "-".
type ReaderConfig struct {
	Path string `mapstructure:"path"`
}

// MQTTConfig holds the broker subscription parameters.
type MQTTConfig struct {
	Broker         string        `mapstructure:"broker" validate:"omitempty,url"`
	Topic          string        `mapstructure:"topic"`
	ClientID       string        `mapstructure:"client_id"`
	QoS            int           `mapstructure:"qos" validate:"min=0,max=1"`
	KeepAlive      time.Duration `mapstructure:"keep_alive" validate:"min=0"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout" validate:"min=1ms"`
}

// WindowConfig holds the sliding window length.
type WindowConfig struct {
	Duration time.Duration `mapstructure:"duration" validate:"required,min=1s"`
}

// EmitConfig selects the snapshot cadence.
type EmitConfig struct {
	Mode     string        `mapstructure:"mode" validate:"required,oneof=line interval"`
	Interval time.Duration `mapstructure:"interval" validate:"required_if=Mode interval,omitempty,min=1ms"`
}

// SinkConfig holds the output file location.
type SinkConfig struct {
	RootDir string `mapstructure:"root_dir" validate:"required"`
	FileKey string `mapstructure:"file_key" validate:"required"`
}

// ServerConfig holds the optional status HTTP server configuration.
type ServerConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	Port              int  `mapstructure:"port" validate:"required_if=Enabled true,min=0,max=65535"`
	ReadHeaderTimeout int  `mapstructure:"read_header_timeout" validate:"min=0"` // seconds
	ReadTimeout       int  `mapstructure:"read_timeout" validate:"min=0"`        // seconds
	WriteTimeout      int  `mapstructure:"write_timeout" validate:"min=0"`       // seconds
	IdleTimeout       int  `mapstructure:"idle_timeout" validate:"min=0"`        // seconds
}
