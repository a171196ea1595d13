package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "configs.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_ValidConfig(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `log:
  level: debug
source:
  kind: serial
  serial:
    device: /dev/ttyUSB0
    baud_rate: 9600
window:
  duration: 10m
emit:
  mode: interval
  interval: 15s
sink:
  root_dir: ./data
  file_key: emontx.txt
server:
  enabled: true
  port: 8080
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, SourceSerial, cfg.Source.Kind)
	assert.Equal(t, "/dev/ttyUSB0", cfg.Source.Serial.Device)
	assert.Equal(t, 9600, cfg.Source.Serial.BaudRate)
	assert.Equal(t, 10*time.Minute, cfg.Window.Duration)
	assert.Equal(t, EmitModeInterval, cfg.Emit.Mode)
	assert.Equal(t, 15*time.Second, cfg.Emit.Interval)
	assert.Equal(t, "./data", cfg.Sink.RootDir)
	assert.Equal(t, "emontx.txt", cfg.Sink.FileKey)
	assert.True(t, cfg.Server.Enabled)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `log:
  level: info
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, SourceSerial, cfg.Source.Kind)
	assert.Equal(t, "/dev/ttyACM0", cfg.Source.Serial.Device)
	assert.Equal(t, 115200, cfg.Source.Serial.BaudRate)
	assert.Equal(t, 5*time.Minute, cfg.Window.Duration)
	assert.Equal(t, EmitModeLine, cfg.Emit.Mode)
	assert.Equal(t, "/run/shm", cfg.Sink.RootDir)
	assert.Equal(t, "emontx", cfg.Sink.FileKey)
	assert.Equal(t, 64*1024, cfg.Source.MaxLineBytes)
	assert.False(t, cfg.Server.Enabled)
}

func TestLoadConfig_InvalidLogLevel(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `log:
  level: loud
`)

	cfg, err := LoadConfig(path)
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), "log.level")
}

func TestLoadConfig_InvalidEmitMode(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `emit:
  mode: hourly
`)

	cfg, err := LoadConfig(path)
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "emit.mode")
}

func TestLoadConfig_MQTTRequiresBrokerAndTopic(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `source:
  kind: mqtt
`)

	cfg, err := LoadConfig(path)
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mqtt.broker")
	assert.Contains(t, err.Error(), "mqtt.topic")
}

func TestLoadConfig_SerialRequiresDevice(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `source:
  kind: serial
  serial:
    device: ""
`)

	cfg, err := LoadConfig(path)
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "serial.device")
}

func TestLoadConfig_InvalidPortRange(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `server:
  enabled: true
  port: 70000
`)

	cfg, err := LoadConfig(path)
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
}

func TestLoadConfig_WindowTooShort(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `window:
  duration: 10ms
`)

	cfg, err := LoadConfig(path)
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "window.duration")
}

func TestLoadConfig_DurationBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		field   string
	}{
		{
			name:    "negative emit interval",
			content: "emit:\n  mode: interval\n  interval: -5s\n",
			field:   "emit.interval",
		},
		{
			name:    "zero emit interval in interval mode",
			content: "emit:\n  mode: interval\n  interval: 0s\n",
			field:   "emit.interval",
		},
		{
			name:    "zero mqtt connect timeout",
			content: "source:\n  kind: mqtt\n  mqtt:\n    broker: tcp://localhost:1883\n    topic: emon/emontx\n    connect_timeout: 0s\n",
			field:   "source.mqtt.connect_timeout",
		},
		{
			name:    "negative mqtt keep alive",
			content: "source:\n  kind: mqtt\n  mqtt:\n    broker: tcp://localhost:1883\n    topic: emon/emontx\n    keep_alive: -1s\n",
			field:   "source.mqtt.keep_alive",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := LoadConfig(writeConfig(t, tt.content))
			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestLoadConfig_ZeroIntervalAllowedInLineMode(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(writeConfig(t, "emit:\n  mode: line\n  interval: 0s\n"))
	require.NoError(t, err)
	assert.Equal(t, EmitModeLine, cfg.Emit.Mode)
	assert.Zero(t, cfg.Emit.Interval)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}
