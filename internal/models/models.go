// Theatrum - Streaming Front-End View-State Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/theatrum

// Package models defines the core data model: catalog content records,
// viewer profiles, per-profile state, the in-memory session, and the
// durable snapshot written to the state store.
package models

// ContentRecord is one catalog entry (movie or show) with display
// metadata and rating fields. Display metadata is immutable for the
// lifetime of the process; only the rating fields are mutated, and only
// by the rating aggregator.
type ContentRecord struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PosterRef   string `json:"posterRef"`
	BackdropRef string `json:"backdropRef"`

	// Classification is the content rating string (e.g. "G", "PG-13").
	Classification string   `json:"classification"`
	ReleaseYear    int      `json:"releaseYear"`
	Genres         []string `json:"genres"`

	// PlaybackRef is an opaque handle to an external playable asset.
	// Empty means the record is not playable.
	PlaybackRef string `json:"playbackRef,omitempty"`

	// CommunityRating is the aggregate average across all raters,
	// in [0, 5], rounded to 2 decimal places.
	CommunityRating float64 `json:"communityRating"`

	// RatingCount is the number of ratings folded into CommunityRating.
	RatingCount int `json:"ratingCount"`

	// PersonalRating is the active profile's own 1..5 rating.
	// Zero means not yet rated; it is never persisted as part of the
	// catalog, only overlaid from the active profile's state.
	PersonalRating int `json:"personalRating,omitempty"`
}

// Playable reports whether the record references a playable asset.
func (c *ContentRecord) Playable() bool {
	return c.PlaybackRef != ""
}

// Profile is a named viewer identity under the single simulated
// account. The profile set is fixed at startup.
type Profile struct {
	ID          int    `json:"id"`
	DisplayName string `json:"displayName"`
	AvatarRef   string `json:"avatarRef"`
}

// ProfileState holds one profile's persisted personal data.
//
// Watchlist preserves insertion order because "My List" displays
// entries in the order they were added; membership checks are done by
// scan (the list is small by construction).
type ProfileState struct {
	Watchlist []int       `json:"watchlist"`
	Ratings   map[int]int `json:"ratings"`
}

// NewProfileState returns an empty ProfileState with allocated maps.
func NewProfileState() *ProfileState {
	return &ProfileState{
		Watchlist: []int{},
		Ratings:   map[int]int{},
	}
}

// InWatchlist reports whether id is on the watchlist.
func (p *ProfileState) InWatchlist(id int) bool {
	for _, v := range p.Watchlist {
		if v == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy, so callers can hand state across the
// persistence boundary without aliasing the live session's maps.
func (p *ProfileState) Clone() *ProfileState {
	clone := &ProfileState{
		Watchlist: make([]int, len(p.Watchlist)),
		Ratings:   make(map[int]int, len(p.Ratings)),
	}
	copy(clone.Watchlist, p.Watchlist)
	for k, v := range p.Ratings {
		clone.Ratings[k] = v
	}
	return clone
}

// AuthState is the persisted authentication flag plus the active
// profile at the time of the last snapshot.
type AuthState struct {
	IsAuthenticated bool `json:"isAuthenticated"`
	ActiveProfileID int  `json:"activeProfileId,omitempty"`
}

// SessionState is the process-wide session: the authentication flag and
// the active profile. It is cleared on logout and survives restarts
// only through the persisted snapshot.
type SessionState struct {
	IsAuthenticated bool
	ActiveProfileID int
}

// PersistedDatabase is the durable snapshot. The whole document is
// read-modify-written as one unit against a single storage key.
type PersistedDatabase struct {
	Auth AuthState `json:"auth"`

	// Profiles maps profile id to that profile's persisted state.
	// Entries are created lazily on first write and never deleted.
	Profiles map[int]*ProfileState `json:"profiles"`

	// WatchTimeSeconds is the global cumulative watch time. It is not
	// tracked per profile.
	WatchTimeSeconds int64 `json:"watchTimeSeconds"`
}

// NewPersistedDatabase returns the default-initialized snapshot used
// when the durable slot is absent or unreadable.
func NewPersistedDatabase() *PersistedDatabase {
	return &PersistedDatabase{
		Auth:     AuthState{},
		Profiles: map[int]*ProfileState{},
	}
}

// ProfileState returns the stored state for a profile, creating an
// empty entry on first access.
func (db *PersistedDatabase) ProfileState(profileID int) *ProfileState {
	if db.Profiles == nil {
		db.Profiles = map[int]*ProfileState{}
	}
	st, ok := db.Profiles[profileID]
	if !ok {
		st = NewProfileState()
		db.Profiles[profileID] = st
	}
	return st
}

// Normalize repairs nil maps after decoding an untrusted snapshot.
// It returns false if the document shape is beyond repair and the
// caller should fall back to defaults.
func (db *PersistedDatabase) Normalize() bool {
	if db.WatchTimeSeconds < 0 {
		return false
	}
	if db.Profiles == nil {
		db.Profiles = map[int]*ProfileState{}
	}
	for _, st := range db.Profiles {
		if st == nil {
			return false
		}
		if st.Watchlist == nil {
			st.Watchlist = []int{}
		}
		if st.Ratings == nil {
			st.Ratings = map[int]int{}
		}
		for _, r := range st.Ratings {
			if r < 1 || r > 5 {
				return false
			}
		}
	}
	return true
}
