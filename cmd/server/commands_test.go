package main

import (
	"context"
	"errors"
	"os"
	"syscall"
	"testing"

	"internship-service/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeServer struct {
	runErr      error
	block       chan struct{}
	shutdownErr error
	shutdowns   int
}

func (s *fakeServer) Run() error {
	if s.block != nil {
		<-s.block
	}
	return s.runErr
}

func (s *fakeServer) Shutdown(context.Context) error {
	s.shutdowns++
	if s.block != nil {
		close(s.block)
	}
	return s.shutdownErr
}

func TestRunUntilSignal(t *testing.T) {
	t.Run("run failure is returned after shutdown", func(t *testing.T) {
		bindErr := errors.New("listen tcp :8080: bind: address already in use")
		srv := &fakeServer{runErr: bindErr}

		err := runUntilSignal(srv, make(chan os.Signal), logger.Discard())
		require.Error(t, err)
		assert.ErrorIs(t, err, bindErr)
		assert.Equal(t, 1, srv.shutdowns)
	})

	t.Run("signal shuts down cleanly", func(t *testing.T) {
		srv := &fakeServer{block: make(chan struct{})}
		quit := make(chan os.Signal, 1)
		quit <- syscall.SIGTERM

		err := runUntilSignal(srv, quit, logger.Discard())
		assert.NoError(t, err)
		assert.Equal(t, 1, srv.shutdowns)
	})

	t.Run("shutdown failure", func(t *testing.T) {
		srv := &fakeServer{block: make(chan struct{}), shutdownErr: context.DeadlineExceeded}
		quit := make(chan os.Signal, 1)
		quit <- syscall.SIGINT

		err := runUntilSignal(srv, quit, logger.Discard())
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
