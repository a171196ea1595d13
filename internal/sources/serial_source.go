package sources

import (
	"context"
	"fmt"

	"go.bug.st/serial"
)

// SerialConfig describes the serial link to the sensor board.
type SerialConfig struct {
	Device   string
	BaudRate int
}

// openPort is swapped in tests.
var openPort = func(device string, mode *serial.Mode) (serial.Port, error) {
	return serial.Open(device, mode)
}

// NewSerialSource opens the device at the configured baud rate, 8N1, and
// reads newline-terminated lines from it.
func NewSerialSource(ctx context.Context, serialConf SerialConfig, conf Config) (LineSource, error) {
	port, err := openPort(serialConf.Device, &serial.Mode{
		BaudRate: serialConf.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %q: %w", serialConf.Device, err)
	}
	return newReaderSource(ctx, "serial", port, conf), nil
}
