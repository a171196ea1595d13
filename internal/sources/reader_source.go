package sources

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

// readerSource reads lines from any io.ReadCloser in a background goroutine.
// Lines longer than MaxLineBytes are dropped whole rather than stopping the
// source: a noisy serial link must not take the loop down.
type readerSource struct {
	name   string
	rc     io.ReadCloser
	ch     chan string
	cancel context.CancelFunc

	closeOnce sync.Once
	mu        sync.Mutex
	err       error
}

// NewReaderSource reads from the file at path, or from stdin when path is "-".
func NewReaderSource(ctx context.Context, path string, conf Config) (LineSource, error) {
	if path == "-" {
		return newReaderSource(ctx, "stdin", io.NopCloser(os.Stdin), conf), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", path, err)
	}
	return newReaderSource(ctx, "file", f, conf), nil
}

func newReaderSource(ctx context.Context, name string, rc io.ReadCloser, conf Config) *readerSource {
	conf = conf.withDefaults()
	ctx, cancel := context.WithCancel(ctx)
	s := &readerSource{
		name:   name,
		rc:     rc,
		ch:     make(chan string, conf.BufferSize),
		cancel: cancel,
	}
	go s.read(ctx, conf.MaxLineBytes)
	return s
}

func (s *readerSource) read(ctx context.Context, maxLineBytes int) {
	defer close(s.ch)

	// Room for the "\r\n" terminator so the limit applies to content only.
	reader := bufio.NewReaderSize(s.rc, maxLineBytes+2)
	discarding := false
	for {
		chunk, err := reader.ReadSlice('\n')
		if errors.Is(err, bufio.ErrBufferFull) {
			// Line longer than the buffer: drop it up to the next newline.
			if !discarding {
				metricLinesDroppedTotal.WithLabelValues(s.name, "too_long").Inc()
			}
			discarding = true
			continue
		}
		if discarding {
			discarding = false
			if err == nil {
				continue
			}
			chunk = nil
		}

		line := bytes.TrimRight(chunk, "\r\n")
		if len(line) > maxLineBytes {
			metricLinesDroppedTotal.WithLabelValues(s.name, "too_long").Inc()
			line = nil
		}
		if len(line) > 0 {
			metricLinesReadTotal.WithLabelValues(s.name).Inc()
			select {
			case s.ch <- string(line):
			case <-ctx.Done():
				s.setErr(ErrSourceClosed)
				return
			}
		}

		if err != nil {
			if ctx.Err() != nil {
				err = ErrSourceClosed
			}
			s.setErr(err)
			return
		}
	}
}

func (s *readerSource) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil {
		s.err = err
	}
}

func (s *readerSource) Lines() <-chan string { return s.ch }

func (s *readerSource) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close stops the source. Closing the underlying reader unblocks a pending
// read.
func (s *readerSource) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.setErr(ErrSourceClosed)
		s.cancel()
		err = s.rc.Close()
	})
	return err
}

func (s *readerSource) Name() string { return s.name }
