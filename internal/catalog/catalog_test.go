// Theatrum - Streaming Front-End View-State Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/theatrum

package catalog

import (
	"testing"
)

func TestNewCatalogIsDeterministic(t *testing.T) {
	a := New()
	b := New()

	if a.Len() != b.Len() {
		t.Fatalf("Expected identical catalogs, got sizes %d and %d", a.Len(), b.Len())
	}

	for _, id := range a.order {
		ra, _ := a.Get(id)
		rb, ok := b.Get(id)
		if !ok {
			t.Fatalf("Record %d missing from second catalog", id)
		}
		if ra.CommunityRating != rb.CommunityRating || ra.RatingCount != rb.RatingCount {
			t.Errorf("Record %d differs between runs: %.2f/%d vs %.2f/%d",
				id, ra.CommunityRating, ra.RatingCount, rb.CommunityRating, rb.RatingCount)
		}
	}
}

func TestListAllCoversAllCategories(t *testing.T) {
	c := New()

	all := c.ListAll()
	if len(all) != c.Len() {
		t.Errorf("ListAll returned %d records, catalog holds %d", len(all), c.Len())
	}

	seen := map[int]bool{}
	for _, r := range all {
		if seen[r.ID] {
			t.Errorf("Duplicate id %d in ListAll", r.ID)
		}
		seen[r.ID] = true
	}

	for _, cat := range c.Categories() {
		if len(cat.ItemIDs) == 0 {
			t.Errorf("Category %q has no items", cat.ID)
		}
		for _, id := range cat.ItemIDs {
			if !seen[id] {
				t.Errorf("Category %q references unknown id %d", cat.ID, id)
			}
		}
	}
}

func TestGet(t *testing.T) {
	c := New()

	r, ok := c.Get(33)
	if !ok {
		t.Fatal("Expected record 33 to exist")
	}
	if r.Title != "Stranger Things" {
		t.Errorf("Expected Stranger Things, got %q", r.Title)
	}
	if !r.Playable() {
		t.Error("Expected record 33 to be playable")
	}

	if _, ok := c.Get(9999); ok {
		t.Error("Expected unknown id to return not-found")
	}
}

func TestFeatured(t *testing.T) {
	c := New()

	f := c.Featured()
	if f == nil {
		t.Fatal("Expected a featured record")
	}
	if f.ID != 100 || f.Title != "Dune: Part Two" {
		t.Errorf("Expected featured Dune: Part Two (100), got %q (%d)", f.Title, f.ID)
	}

	// A missing featured id falls back to the first record instead of failing.
	c.featuredID = -1
	f = c.Featured()
	if f == nil {
		t.Fatal("Expected fallback featured record")
	}
	if f.ID != c.order[0] {
		t.Errorf("Expected fallback to first record %d, got %d", c.order[0], f.ID)
	}
}

func TestSeededRatingsWithinBounds(t *testing.T) {
	c := New()
	for _, r := range c.ListAll() {
		if r.CommunityRating < 0 || r.CommunityRating > 5 {
			t.Errorf("Record %d community rating out of range: %f", r.ID, r.CommunityRating)
		}
		if r.RatingCount < 0 {
			t.Errorf("Record %d has negative rating count", r.ID)
		}
	}
}
