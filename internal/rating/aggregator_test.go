// Theatrum - Streaming Front-End View-State Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/theatrum

package rating

import (
	"errors"
	"testing"

	"github.com/tomtom215/theatrum/internal/models"
)

func TestApply_FirstTimeRating(t *testing.T) {
	// Base record: communityRating 4.0 across 10 raters (total 40).
	rec := &models.ContentRecord{ID: 1, CommunityRating: 4.0, RatingCount: 10}

	if err := Apply(rec, 0, 5); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if rec.RatingCount != 11 {
		t.Errorf("Expected rating count 11, got %d", rec.RatingCount)
	}
	// (40 + 5) / 11 = 4.0909... rounds to 4.09
	if rec.CommunityRating != 4.09 {
		t.Errorf("Expected community rating 4.09, got %.4f", rec.CommunityRating)
	}
	if rec.PersonalRating != 5 {
		t.Errorf("Expected personal rating 5, got %d", rec.PersonalRating)
	}
}

func TestApply_ReRateDoesNotAddRater(t *testing.T) {
	rec := &models.ContentRecord{ID: 1, CommunityRating: 4.0, RatingCount: 10}

	if err := Apply(rec, 0, 5); err != nil {
		t.Fatalf("First rate failed: %v", err)
	}
	if err := Apply(rec, 5, 3); err != nil {
		t.Fatalf("Re-rate failed: %v", err)
	}

	if rec.RatingCount != 11 {
		t.Errorf("Re-rate must not change rating count, got %d", rec.RatingCount)
	}
	// (45 - 5 + 3) / 11 = 3.9090... rounds to 3.91
	if rec.CommunityRating != 3.91 {
		t.Errorf("Expected community rating 3.91, got %.4f", rec.CommunityRating)
	}
	if rec.PersonalRating != 3 {
		t.Errorf("Expected personal rating 3, got %d", rec.PersonalRating)
	}
}

func TestApply_FirstRatingOnUnratedRecord(t *testing.T) {
	rec := &models.ContentRecord{ID: 2}

	if err := Apply(rec, 0, 4); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if rec.RatingCount != 1 {
		t.Errorf("Expected rating count 1, got %d", rec.RatingCount)
	}
	if rec.CommunityRating != 4.0 {
		t.Errorf("Expected community rating 4.0, got %.4f", rec.CommunityRating)
	}
}

func TestApply_RepeatedReRatesAreStable(t *testing.T) {
	rec := &models.ContentRecord{ID: 3, CommunityRating: 3.0, RatingCount: 4}

	if err := Apply(rec, 0, 5); err != nil {
		t.Fatal(err)
	}
	prev := 5
	for _, r := range []int{1, 2, 3, 4, 5, 2, 5} {
		if err := Apply(rec, prev, r); err != nil {
			t.Fatal(err)
		}
		prev = r
	}

	// Count grew exactly once for this rater, regardless of call order.
	if rec.RatingCount != 5 {
		t.Errorf("Expected rating count 5 after many re-rates, got %d", rec.RatingCount)
	}
	// Final contribution is 5: (12 + 5) / 5 = 3.4
	if rec.CommunityRating != 3.4 {
		t.Errorf("Expected community rating 3.4, got %.4f", rec.CommunityRating)
	}
	if rec.CommunityRating < 0 || rec.CommunityRating > 5 {
		t.Errorf("Community rating out of bounds: %.4f", rec.CommunityRating)
	}
}

func TestApply_RejectsOutOfRange(t *testing.T) {
	for _, bad := range []int{-1, 0, 6, 100} {
		rec := &models.ContentRecord{ID: 4, CommunityRating: 4.0, RatingCount: 10}
		err := Apply(rec, 0, bad)
		if !errors.Is(err, ErrInvalidRating) {
			t.Errorf("Expected ErrInvalidRating for %d, got %v", bad, err)
		}
		// No partial mutation on rejection.
		if rec.CommunityRating != 4.0 || rec.RatingCount != 10 || rec.PersonalRating != 0 {
			t.Errorf("Record mutated on rejected rating %d: %+v", bad, rec)
		}
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		rating int
		want   bool
	}{
		{0, false},
		{1, true},
		{3, true},
		{5, true},
		{6, false},
		{-2, false},
	}
	for _, tt := range tests {
		if got := Valid(tt.rating); got != tt.want {
			t.Errorf("Valid(%d) = %v, want %v", tt.rating, got, tt.want)
		}
	}
}
