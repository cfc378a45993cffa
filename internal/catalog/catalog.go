// Theatrum - Streaming Front-End View-State Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/theatrum

// Package catalog is the fixed content supplier. It produces the
// immutable initial set of content records at startup; it never mutates
// them afterwards. Rating fields on the records it hands out are
// starting values only - the view-state layer copies records before
// applying any mutation.
package catalog

import (
	"github.com/tomtom215/theatrum/internal/models"
)

// Category is one named row of the front page in display order.
type Category struct {
	ID    string
	Title string
	// ItemIDs reference records in the catalog, in display order.
	ItemIDs []int
}

// Catalog holds the immutable content set keyed by identifier.
type Catalog struct {
	records    map[int]*models.ContentRecord
	order      []int
	categories []Category
	featuredID int
}

// New builds the catalog from the built-in fixture set. Generation is
// deterministic: the same records, ratings, and counts on every start.
func New() *Catalog {
	records, order, categories, featuredID := fixtureSet()

	byID := make(map[int]*models.ContentRecord, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}

	return &Catalog{
		records:    byID,
		order:      order,
		categories: categories,
		featuredID: featuredID,
	}
}

// ListAll returns every record in catalog order. Called once at startup
// by the view-state layer.
func (c *Catalog) ListAll() []*models.ContentRecord {
	out := make([]*models.ContentRecord, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.records[id])
	}
	return out
}

// Get returns the record for id, or false for unknown ids.
func (c *Catalog) Get(id int) (*models.ContentRecord, bool) {
	r, ok := c.records[id]
	return r, ok
}

// Featured returns the featured record. If the configured featured id
// is missing from the catalog it falls back to the first record rather
// than failing.
func (c *Catalog) Featured() *models.ContentRecord {
	if r, ok := c.records[c.featuredID]; ok {
		return r
	}
	if len(c.order) > 0 {
		return c.records[c.order[0]]
	}
	return nil
}

// Categories returns the named front-page rows in display order.
func (c *Catalog) Categories() []Category {
	return c.categories
}

// Len returns the number of records in the catalog.
func (c *Catalog) Len() int {
	return len(c.records)
}
