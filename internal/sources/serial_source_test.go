package sources

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.bug.st/serial"
)

type fakePort struct {
	serial.Port
	r io.Reader
}

func (p *fakePort) Read(b []byte) (int, error) { return p.r.Read(b) }
func (p *fakePort) Close() error                { return nil }

func TestNewSerialSource(t *testing.T) {
	var gotDevice string
	var gotMode *serial.Mode

	orig := openPort
	t.Cleanup(func() { openPort = orig })
	openPort = func(device string, mode *serial.Mode) (serial.Port, error) {
		gotDevice, gotMode = device, mode
		return &fakePort{r: strings.NewReader("{\"humidity\":{\"a\":40}}\n")}, nil
	}

	src, err := NewSerialSource(context.Background(), SerialConfig{Device: "/dev/ttyACM0", BaudRate: 115200}, Config{})
	require.NoError(t, err)

	assert.Equal(t, []string{`{"humidity":{"a":40}}`}, drain(t, src))
	assert.Equal(t, "serial", src.Name())
	assert.Equal(t, "/dev/ttyACM0", gotDevice)
	assert.Equal(t, &serial.Mode{BaudRate: 115200, DataBits: 8, Parity: serial.NoParity, StopBits: serial.OneStopBit}, gotMode)

	openPort = func(string, *serial.Mode) (serial.Port, error) {
		return nil, errors.New("no such device")
	}
	_, err = NewSerialSource(context.Background(), SerialConfig{Device: "/dev/nope", BaudRate: 9600}, Config{})
	assert.ErrorContains(t, err, "/dev/nope")
}
