// Theatrum - Streaming Front-End View-State Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/theatrum

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRatingsAppliedCounter(t *testing.T) {
	before := testutil.ToFloat64(RatingsApplied.WithLabelValues("first"))
	RatingsApplied.WithLabelValues("first").Inc()
	after := testutil.ToFloat64(RatingsApplied.WithLabelValues("first"))

	if after != before+1 {
		t.Errorf("Expected counter to increment by 1, got %f -> %f", before, after)
	}
}

func TestWatchTimeGauge(t *testing.T) {
	WatchTimeSeconds.Set(3725)
	if got := testutil.ToFloat64(WatchTimeSeconds); got != 3725 {
		t.Errorf("Expected gauge 3725, got %f", got)
	}
}

func TestObserveAPIRequest(t *testing.T) {
	// Histogram observation must not panic and must register samples.
	ObserveAPIRequest("/api/v1/catalog", "GET", "200", 25*time.Millisecond)

	count := testutil.CollectAndCount(APIRequestDuration)
	if count == 0 {
		t.Error("Expected histogram to have at least one metric after observation")
	}
}
