package cli

import (
	"bytes"
	"os"
	"syscall"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type fakeInterrupt struct {
	ch  chan struct{}
	sig os.Signal
}

func (f *fakeInterrupt) Interrupted() <-chan struct{} { return f.ch }

func (f *fakeInterrupt) Received() os.Signal { return f.sig }

func TestWatchInterrupt(t *testing.T) {
	t.Parallel()

	t.Run("logs the signal", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		src := &fakeInterrupt{ch: make(chan struct{}), sig: syscall.SIGTERM}
		stop := watchInterrupt(src, zerolog.New(&buf))

		close(src.ch)
		stop()

		assert.Contains(t, buf.String(), "interrupt received, stopping build")
		assert.Contains(t, buf.String(), `"signal":"terminated"`)
	})

	t.Run("silent without a signal", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		stop := watchInterrupt(&fakeInterrupt{ch: make(chan struct{})}, zerolog.New(&buf))
		stop()

		assert.Empty(t, buf.String())
	})
}
