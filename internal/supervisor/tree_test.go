// Theatrum - Streaming Front-End View-State Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/theatrum

package supervisor

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingService records how many times it was started.
type countingService struct {
	starts atomic.Int32
}

func (s *countingService) Serve(ctx context.Context) error {
	s.starts.Add(1)
	<-ctx.Done()
	return ctx.Err()
}

func (s *countingService) String() string { return "counting-service" }

func TestNewTreeAppliesDefaults(t *testing.T) {
	tree := NewTree(slog.Default(), TreeConfig{})

	assert.Equal(t, 5.0, tree.config.FailureThreshold)
	assert.Equal(t, 30.0, tree.config.FailureDecay)
	assert.Equal(t, 15*time.Second, tree.config.FailureBackoff)
	assert.Equal(t, 10*time.Second, tree.config.ShutdownTimeout)
	assert.NotNil(t, tree.Root())
}

func TestTreeRunsServicesInAllLayers(t *testing.T) {
	tree := NewTree(slog.Default(), DefaultTreeConfig())

	state := &countingService{}
	messaging := &countingService{}
	api := &countingService{}
	tree.AddStateService(state)
	tree.AddMessagingService(messaging)
	tree.AddAPIService(api)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)

	require.Eventually(t, func() bool {
		return state.starts.Load() >= 1 && messaging.starts.Load() >= 1 && api.starts.Load() >= 1
	}, 2*time.Second, time.Millisecond)

	cancel()
	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("supervisor tree did not stop")
	}
}
