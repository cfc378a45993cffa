// Theatrum - Streaming Front-End View-State Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/theatrum

// Package watchtime accrues cumulative watch time while a session is
// authenticated.
//
// The accumulator is a long-running service meant to sit under the
// supervision tree: it credits one second per tick, publishes the new
// total to UI clients, and persists the counter both periodically and
// synchronously on shutdown. Accrual is gated on authentication only;
// whether anything is actually playing is invisible to it, matching
// the session-time semantics of the counter.
package watchtime

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/theatrum/internal/config"
	"github.com/tomtom215/theatrum/internal/logging"
	"github.com/tomtom215/theatrum/internal/metrics"
)

// State is the view-state surface the accumulator drives. Implemented
// by viewstate.Controller.
type State interface {
	IsAuthenticated() bool
	AddWatchSeconds(n int64) int64
	PublishWatchTimeTick(seconds int64, formatted string)
	Flush()
}

// Accumulator ticks watch time forward and flushes it to the store.
type Accumulator struct {
	state         State
	tickInterval  time.Duration
	flushInterval time.Duration
}

// New builds an accumulator over cfg. Zero intervals fall back to the
// defaults rather than producing a spin loop.
func New(state State, cfg config.WatchTimeConfig) *Accumulator {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Second
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = 30 * time.Second
	}
	return &Accumulator{
		state:         state,
		tickInterval:  cfg.TickInterval,
		flushInterval: cfg.FlushInterval,
	}
}

// Serve runs the accrual loop until ctx is cancelled, flushing the
// counter one last time on the way out.
func (a *Accumulator) Serve(ctx context.Context) error {
	logging.Info().
		Dur("tick_interval", a.tickInterval).
		Dur("flush_interval", a.flushInterval).
		Msg("Watch-time accumulator started")

	tick := time.NewTicker(a.tickInterval)
	defer tick.Stop()
	flush := time.NewTicker(a.flushInterval)
	defer flush.Stop()

	for {
		select {
		case <-ctx.Done():
			a.state.Flush()
			logging.Info().Msg("Watch-time accumulator stopped")
			return ctx.Err()
		case <-tick.C:
			a.tickOnce()
		case <-flush.C:
			a.state.Flush()
		}
	}
}

// tickOnce credits one second when a session is active.
func (a *Accumulator) tickOnce() {
	if !a.state.IsAuthenticated() {
		return
	}
	total := a.state.AddWatchSeconds(1)
	metrics.WatchTimeTicks.Inc()
	metrics.WatchTimeSeconds.Set(float64(total))
	a.state.PublishWatchTimeTick(total, Format(total))
}

// String names the service in supervisor logs.
func (a *Accumulator) String() string { return "watchtime-accumulator" }

// Format renders seconds as zero-padded HH:MM:SS. Hours are unbounded;
// 90061 seconds render as "25:01:01". Negative input clamps to zero.
func Format(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
