// Theatrum - Streaming Front-End View-State Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/theatrum

// Package rating recomputes a record's community rating when a viewer
// submits or changes a personal rating.
//
// The fold keeps the invariant communityRating == sum/ratingCount:
// a first-time rating adds a rater, a re-rate replaces the viewer's
// previous contribution without changing the rater count. Re-rating
// never double-counts a rater.
package rating

import (
	"errors"
	"math"

	"github.com/tomtom215/theatrum/internal/metrics"
	"github.com/tomtom215/theatrum/internal/models"
)

// ErrInvalidRating is returned for ratings outside 1..5.
var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// Valid reports whether r is an acceptable personal rating.
func Valid(r int) bool {
	return r >= 1 && r <= 5
}

// Apply folds newRating into rec's community rating and sets the
// personal rating. prev is the viewer's previous rating for this
// record, zero if they have not rated it before.
//
// Replacing a rating keeps ratingCount unchanged; a first-time rating
// increments it. The resulting community rating is rounded to 2
// decimal places.
func Apply(rec *models.ContentRecord, prev, newRating int) error {
	if !Valid(newRating) {
		metrics.RatingsRejected.Inc()
		return ErrInvalidRating
	}
	if prev != 0 && !Valid(prev) {
		metrics.RatingsRejected.Inc()
		return ErrInvalidRating
	}

	total := rec.CommunityRating * float64(rec.RatingCount)
	count := rec.RatingCount

	kind := "first"
	if prev > 0 {
		total = total - float64(prev) + float64(newRating)
		kind = "rerate"
	} else {
		total += float64(newRating)
		count++
	}

	if count > 0 {
		rec.CommunityRating = round2(total / float64(count))
	} else {
		rec.CommunityRating = 0
	}
	rec.RatingCount = count
	rec.PersonalRating = newRating

	metrics.RatingsApplied.WithLabelValues(kind).Inc()
	return nil
}

// round2 rounds to 2 decimal places.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
