// Theatrum - Streaming Front-End View-State Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/theatrum

// Package viewstate owns the application state: the content map
// derived from the catalog, the active session, the watchlist, and
// personal ratings.
//
// Every mutation goes through the Controller and is serialized by a
// single mutex - the concurrency model the browser got for free from
// its single-threaded event loop. A rating submitted concurrently with
// a profile switch therefore lands either wholly before or wholly
// after it, and applies to whichever profile held the session when the
// lock was acquired.
//
// Shared content records never carry a personal rating; the overlay is
// applied to per-call copies, so profile switches cannot leak one
// profile's ratings into another's view.
package viewstate

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/tomtom215/theatrum/internal/catalog"
	"github.com/tomtom215/theatrum/internal/logging"
	"github.com/tomtom215/theatrum/internal/models"
	"github.com/tomtom215/theatrum/internal/rating"
	"github.com/tomtom215/theatrum/internal/session"
	"github.com/tomtom215/theatrum/internal/store"
)

var (
	// ErrUnknownContent is returned for ids absent from the catalog.
	ErrUnknownContent = errors.New("unknown content id")

	// ErrNotPlayable is returned when a play request targets a record
	// without a playback ref.
	ErrNotPlayable = errors.New("content is not playable")
)

// Player is the playback collaborator. The engine only decides whether
// a ref exists and forwards it; decoding, negotiation, and streaming
// are entirely the collaborator's problem.
type Player interface {
	RequestPlay(playbackRef string) error
}

// EventSink receives state-change events for fan-out to UI clients.
type EventSink interface {
	Publish(eventType string, data interface{})
}

// Event types published to the EventSink.
const (
	EventRatingUpdated = "rating.updated"
	EventSessionChange = "session.changed"
	EventWatchTimeTick = "watchtime.tick"
)

// Controller is the single owner of all mutable view state.
type Controller struct {
	mu sync.Mutex

	records map[int]*models.ContentRecord
	order   []int
	cat     *catalog.Catalog

	session *session.Manager
	store   *store.Store
	db      *models.PersistedDatabase

	player Player
	events EventSink
}

// Option configures optional collaborators.
type Option func(*Controller)

// WithPlayer sets the playback collaborator.
func WithPlayer(p Player) Option {
	return func(c *Controller) { c.player = p }
}

// WithEvents sets the state-change event sink.
func WithEvents(e EventSink) Option {
	return func(c *Controller) { c.events = e }
}

// New loads the persisted snapshot, builds the content map from the
// catalog, and optionally restores the persisted session.
func New(cat *catalog.Catalog, st *store.Store, passwordHash string, restoreSession bool, opts ...Option) *Controller {
	db := st.Load()
	mgr := session.New(session.DefaultProfiles(), passwordHash, db)

	c := &Controller{
		records: make(map[int]*models.ContentRecord, cat.Len()),
		cat:     cat,
		session: mgr,
		store:   st,
		db:      db,
	}
	for _, opt := range opts {
		opt(c)
	}

	// The catalog's records are its own; the controller mutates rating
	// fields, so it works on copies.
	for _, rec := range cat.ListAll() {
		cp := *rec
		c.records[cp.ID] = &cp
		c.order = append(c.order, cp.ID)
	}

	if restoreSession && mgr.Restore() {
		c.persistLocked()
	}

	logging.Info().
		Int("records", len(c.records)).
		Bool("authenticated", mgr.IsAuthenticated()).
		Msg("View state initialized")
	return c
}

// publish fans out a state event when a sink is attached.
func (c *Controller) publish(eventType string, data interface{}) {
	if c.events != nil {
		c.events.Publish(eventType, data)
	}
}

// persistLocked writes the snapshot. Callers hold c.mu.
func (c *Controller) persistLocked() {
	c.store.Save(c.db)
}

// sessionResponseLocked assembles the session view. Callers hold c.mu.
func (c *Controller) sessionResponseLocked() models.SessionResponse {
	resp := models.SessionResponse{IsAuthenticated: c.session.IsAuthenticated()}
	if p, ok := c.session.ActiveProfile(); ok {
		resp.Profile = p
	}
	if st, ok := c.session.ActiveState(); ok {
		resp.State = st.Clone()
	}
	return resp
}

// Session returns the current session view.
func (c *Controller) Session() models.SessionResponse {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionResponseLocked()
}

// Profiles returns the fixed profile set for the profile picker.
func (c *Controller) Profiles() []models.Profile {
	return c.session.Profiles()
}

// Login authenticates and selects the default profile.
func (c *Controller) Login(password string) (models.SessionResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, _, err := c.session.Login(password); err != nil {
		return models.SessionResponse{}, err
	}
	c.persistLocked()

	resp := c.sessionResponseLocked()
	c.publish(EventSessionChange, resp)
	return resp, nil
}

// Logout returns the session to Anonymous. The profile's persisted
// watchlist and ratings are retained for the next login.
func (c *Controller) Logout() models.SessionResponse {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.session.Logout()
	c.persistLocked()

	resp := c.sessionResponseLocked()
	c.publish(EventSessionChange, resp)
	return resp
}

// SwitchProfile replaces the active profile and returns the target
// profile's view. The id must be one of the configured profiles.
func (c *Controller) SwitchProfile(profileID int) (models.SessionResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, _, err := c.session.SwitchProfile(profileID); err != nil {
		return models.SessionResponse{}, err
	}
	c.persistLocked()

	resp := c.sessionResponseLocked()
	c.publish(EventSessionChange, resp)
	return resp, nil
}

// overlaidLocked copies rec and applies the active profile's personal
// rating. Callers hold c.mu.
func (c *Controller) overlaidLocked(rec *models.ContentRecord) *models.ContentRecord {
	out := *rec
	if st, ok := c.session.ActiveState(); ok {
		out.PersonalRating = st.Ratings[rec.ID]
	}
	return &out
}

// Content returns one record with the personal-rating overlay.
func (c *Controller) Content(id int) (*models.ContentRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, ok := c.records[id]
	if !ok {
		return nil, fmt.Errorf("content %d: %w", id, ErrUnknownContent)
	}
	return c.overlaidLocked(rec), nil
}

// All returns every record in catalog order with overlays applied.
func (c *Controller) All() []*models.ContentRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*models.ContentRecord, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.overlaidLocked(c.records[id]))
	}
	return out
}

// Featured returns the hero record. A missing featured id falls back
// to the catalog's first record rather than failing.
func (c *Controller) Featured() *models.ContentRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	base := c.cat.Featured()
	if base == nil {
		return nil
	}
	if rec, ok := c.records[base.ID]; ok {
		return c.overlaidLocked(rec)
	}
	return c.overlaidLocked(base)
}

// Search returns records whose title or any genre contains the query,
// case-insensitively, in catalog order.
func (c *Controller) Search(query string) []*models.ContentRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var out []*models.ContentRecord
	for _, id := range c.order {
		rec := c.records[id]
		if strings.Contains(strings.ToLower(rec.Title), q) || genreMatch(rec.Genres, q) {
			out = append(out, c.overlaidLocked(rec))
		}
	}
	return out
}

func genreMatch(genres []string, q string) bool {
	for _, g := range genres {
		if strings.Contains(strings.ToLower(g), q) {
			return true
		}
	}
	return false
}

// newReleaseYear is the cutoff for the computed New Releases row.
const newReleaseYear = 2023

// Carousels returns the front-page rows: the catalog's named
// categories plus a computed New Releases row, preceded by "My List"
// when a session is active and the watchlist is non-empty. New
// Releases sits after the lead category row, preserving the front
// page's original ordering.
func (c *Controller) Carousels() []models.CarouselResponse {
	c.mu.Lock()
	defer c.mu.Unlock()

	var rows []models.CarouselResponse

	if mylist := c.watchlistLocked(); len(mylist) > 0 {
		rows = append(rows, models.CarouselResponse{ID: "mylist", Title: "My List", Items: mylist})
	}

	for i, cat := range c.cat.Categories() {
		row := models.CarouselResponse{ID: cat.ID, Title: cat.Title}
		for _, id := range cat.ItemIDs {
			if rec, ok := c.records[id]; ok {
				row.Items = append(row.Items, c.overlaidLocked(rec))
			}
		}
		rows = append(rows, row)

		if i == 0 {
			rows = append(rows, c.newReleasesLocked())
		}
	}
	return rows
}

// newReleasesLocked assembles the New Releases row in catalog order.
// Callers hold c.mu.
func (c *Controller) newReleasesLocked() models.CarouselResponse {
	row := models.CarouselResponse{ID: "new", Title: "New Releases"}
	for _, id := range c.order {
		if rec := c.records[id]; rec.ReleaseYear >= newReleaseYear {
			row.Items = append(row.Items, c.overlaidLocked(rec))
		}
	}
	return row
}

// watchlistLocked resolves the active watchlist in insertion order,
// silently omitting ids no longer present in the catalog. Callers hold
// c.mu.
func (c *Controller) watchlistLocked() []*models.ContentRecord {
	st, ok := c.session.ActiveState()
	if !ok {
		return nil
	}

	var out []*models.ContentRecord
	for _, id := range st.Watchlist {
		if rec, ok := c.records[id]; ok {
			out = append(out, c.overlaidLocked(rec))
		}
	}
	return out
}

// Watchlist returns the active profile's "My List" in insertion order.
func (c *Controller) Watchlist() ([]*models.ContentRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.session.IsAuthenticated() {
		return nil, session.ErrNotAuthenticated
	}
	return c.watchlistLocked(), nil
}

// ToggleWatchlist adds id to the watchlist if absent, removes it if
// present. Returns true when the id is now on the list.
func (c *Controller) ToggleWatchlist(id int) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	st, ok := c.session.ActiveState()
	if !ok {
		return false, session.ErrNotAuthenticated
	}
	if _, exists := c.records[id]; !exists {
		return false, fmt.Errorf("content %d: %w", id, ErrUnknownContent)
	}

	added := true
	if st.InWatchlist(id) {
		next := st.Watchlist[:0]
		for _, v := range st.Watchlist {
			if v != id {
				next = append(next, v)
			}
		}
		st.Watchlist = next
		added = false
	} else {
		st.Watchlist = append(st.Watchlist, id)
	}

	c.persistLocked()
	return added, nil
}

// Rate applies the active profile's rating to a record, folds it into
// the community rating, and persists the profile's ratings map. The
// returned copy carries the new personal rating.
func (c *Controller) Rate(contentID, newRating int) (*models.ContentRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	st, ok := c.session.ActiveState()
	if !ok {
		return nil, session.ErrNotAuthenticated
	}
	rec, exists := c.records[contentID]
	if !exists {
		return nil, fmt.Errorf("content %d: %w", contentID, ErrUnknownContent)
	}

	// Fold on a copy, then write the community fields back to the
	// shared record; the personal rating stays on the copy only.
	out := *rec
	if err := rating.Apply(&out, st.Ratings[contentID], newRating); err != nil {
		return nil, err
	}
	rec.CommunityRating = out.CommunityRating
	rec.RatingCount = out.RatingCount

	st.Ratings[contentID] = newRating
	c.persistLocked()

	c.publish(EventRatingUpdated, &out)
	return &out, nil
}

// RequestPlay checks that the record is playable and forwards its
// playback ref to the player collaborator.
func (c *Controller) RequestPlay(contentID int) (*models.PlayResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, ok := c.records[contentID]
	if !ok {
		return nil, fmt.Errorf("content %d: %w", contentID, ErrUnknownContent)
	}
	if !rec.Playable() {
		return nil, fmt.Errorf("content %d: %w", contentID, ErrNotPlayable)
	}

	if c.player != nil {
		if err := c.player.RequestPlay(rec.PlaybackRef); err != nil {
			return nil, fmt.Errorf("playback collaborator: %w", err)
		}
	}
	return &models.PlayResponse{ContentID: contentID, PlaybackRef: rec.PlaybackRef}, nil
}

// IsAuthenticated reports whether a session is active. Used by the
// watch-time accumulator to gate accrual.
func (c *Controller) IsAuthenticated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.IsAuthenticated()
}

// AddWatchSeconds credits accrued watch time and returns the new
// total.
func (c *Controller) AddWatchSeconds(n int64) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.db.WatchTimeSeconds += n
	return c.db.WatchTimeSeconds
}

// WatchTimeSeconds returns the cumulative watch time.
func (c *Controller) WatchTimeSeconds() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.db.WatchTimeSeconds
}

// Flush persists the accrued watch-time counter. Called by the
// periodic flush and on the shutdown path. Every other mutation
// persists synchronously, so watch time is the only field that can be
// stale on disk.
func (c *Controller) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.FlushWatchTime(c.db.WatchTimeSeconds)
}

// PublishWatchTimeTick fans a watch-time update out to UI clients.
func (c *Controller) PublishWatchTimeTick(seconds int64, formatted string) {
	c.publish(EventWatchTimeTick, models.WatchTimeResponse{Seconds: seconds, Formatted: formatted})
}
