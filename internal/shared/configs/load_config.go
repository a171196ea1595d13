package configs

import (
	"fmt"
	"strings"

	"emontx-aggregator/internal/shared/validators"

	"github.com/spf13/viper"
)

// setDefaults mirrors the historical daemon: serial board on ttyACM0 at
// 115200 baud, 5 minute window, output file in /run/shm.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")

	v.SetDefault("source.kind", SourceSerial)
	v.SetDefault("source.max_line_bytes", 64*1024)
	v.SetDefault("source.buffer_size", 1024)
	v.SetDefault("source.serial.device", "/dev/ttyACM0")
	v.SetDefault("source.serial.baud_rate", 115200)
	v.SetDefault("source.reader.path", "-")
	v.SetDefault("source.mqtt.client_id", "emontx-aggregator")
	v.SetDefault("source.mqtt.keep_alive", "30s")
	v.SetDefault("source.mqtt.connect_timeout", "10s")

	v.SetDefault("window.duration", "5m")

	v.SetDefault("emit.mode", EmitModeLine)
	v.SetDefault("emit.interval", "30s")

	v.SetDefault("sink.root_dir", "/run/shm")
	v.SetDefault("sink.file_key", "emontx")

	v.SetDefault("server.enabled", false)
	v.SetDefault("server.port", 9100)
	v.SetDefault("server.read_header_timeout", 5)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 60)
}

// LoadConfig reads configuration from file, applies defaults and validates it.
var LoadConfig = func(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Read from file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", configPath, err)
	}

	// Unmarshal into Config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks field constraints and the source-kind specific settings.
func Validate(cfg *Config) error {
	validate := validators.New()
	validate.RegisterStructValidation(validateSource, SourceConfig{})

	if err := validate.Struct(cfg); err != nil {
		var validationErrors []string
		if ve, ok := err.(validators.ValidationErrors); ok {
			for _, e := range ve {
				validationErrors = append(validationErrors, formatValidationError(e))
			}
		} else {
			validationErrors = append(validationErrors, err.Error())
		}
		return fmt.Errorf("config validation failed: %s", strings.Join(validationErrors, ", "))
	}
	return nil
}

// validateSource requires the settings of the selected source kind only.
func validateSource(sl validators.StructLevel) {
	source := sl.Current().Interface().(SourceConfig)

	switch source.Kind {
	case SourceSerial:
		if source.Serial.Device == "" {
			sl.ReportError(source.Serial.Device, "serial.device", "Device", "required", "")
		}
		if source.Serial.BaudRate == 0 {
			sl.ReportError(source.Serial.BaudRate, "serial.baud_rate", "BaudRate", "required", "")
		}
	case SourceReader:
		if source.Reader.Path == "" {
			sl.ReportError(source.Reader.Path, "reader.path", "Path", "required", "")
		}
	case SourceMQTT:
		if source.MQTT.Broker == "" {
			sl.ReportError(source.MQTT.Broker, "mqtt.broker", "Broker", "required", "")
		}
		if source.MQTT.Topic == "" {
			sl.ReportError(source.MQTT.Topic, "mqtt.topic", "Topic", "required", "")
		}
	}
}

// formatValidationError formats a single validation error into a readable string.
func formatValidationError(e validators.FieldError) string {
	field := e.Field()

	// "Config.source.serial.device" -> "source.serial.device"
	if ns := e.Namespace(); ns != "" {
		parts := strings.Split(ns, ".")
		if len(parts) >= 2 {
			field = strings.Join(parts[1:], ".")
		}
	}

	switch tag := e.Tag(); tag {
	case "required":
		return fmt.Sprintf("%s (required)", field)
	case "min", "max", "oneof", "required_if":
		return fmt.Sprintf("%s (%s=%s)", field, tag, e.Param())
	default:
		return fmt.Sprintf("%s (%s)", field, tag)
	}
}
