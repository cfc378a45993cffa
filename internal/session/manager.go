// Theatrum - Streaming Front-End View-State Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/theatrum

// Package session tracks the authentication flag and active profile.
//
// The state machine has two states: Anonymous and
// Authenticated(profileId). Login moves to Authenticated with the
// default profile, switchProfile moves between profiles while
// authenticated, logout returns to Anonymous. Logging out clears the
// in-memory session but never erases the profile's persisted state.
//
// The manager is not safe for concurrent use on its own; every caller
// goes through the view-state controller, which serializes access.
package session

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/theatrum/internal/logging"
	"github.com/tomtom215/theatrum/internal/metrics"
	"github.com/tomtom215/theatrum/internal/models"
)

var (
	// ErrNotAuthenticated is returned for operations requiring a session.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrUnknownProfile is returned when a profile id is not in the
	// configured profile set.
	ErrUnknownProfile = errors.New("unknown profile")

	// ErrInvalidPassword is returned when the configured password gate
	// rejects a login attempt.
	ErrInvalidPassword = errors.New("invalid password")
)

// Manager owns the session state machine and the in-memory snapshot it
// reads profile state from.
type Manager struct {
	profiles     []models.Profile
	passwordHash string

	state models.SessionState
	db    *models.PersistedDatabase
}

// New creates a Manager over the fixed profile set. passwordHash is an
// optional bcrypt hash; empty disables the password gate entirely,
// matching the original mock login.
func New(profiles []models.Profile, passwordHash string, db *models.PersistedDatabase) *Manager {
	return &Manager{
		profiles:     profiles,
		passwordHash: passwordHash,
		db:           db,
	}
}

// Restore re-establishes a persisted session at startup. It succeeds
// only when the snapshot recorded an authenticated state with a profile
// id that still exists; anything else leaves the session Anonymous.
func (m *Manager) Restore() bool {
	if !m.db.Auth.IsAuthenticated {
		return false
	}
	if _, ok := m.profile(m.db.Auth.ActiveProfileID); !ok {
		logging.Warn().
			Int("profile_id", m.db.Auth.ActiveProfileID).
			Msg("Persisted session references unknown profile, starting anonymous")
		m.db.Auth = models.AuthState{}
		return false
	}

	m.state = models.SessionState{
		IsAuthenticated: true,
		ActiveProfileID: m.db.Auth.ActiveProfileID,
	}
	metrics.SessionTransitions.WithLabelValues("restore").Inc()
	logging.Info().Int("profile_id", m.state.ActiveProfileID).Msg("Session restored from snapshot")
	return true
}

// Login authenticates the simulated account and selects the default
// profile (first in the fixed sequence). It returns the active profile
// and that profile's persisted state for the caller to apply to the
// view state.
func (m *Manager) Login(password string) (*models.Profile, *models.ProfileState, error) {
	if m.passwordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(m.passwordHash), []byte(password)); err != nil {
			return nil, nil, ErrInvalidPassword
		}
	}
	if len(m.profiles) == 0 {
		return nil, nil, fmt.Errorf("no profiles configured: %w", ErrUnknownProfile)
	}

	profile := m.profiles[0]
	m.state = models.SessionState{IsAuthenticated: true, ActiveProfileID: profile.ID}
	m.db.Auth = models.AuthState{IsAuthenticated: true, ActiveProfileID: profile.ID}

	metrics.SessionTransitions.WithLabelValues("login").Inc()
	logging.Info().Int("profile_id", profile.ID).Msg("Logged in")

	return &profile, m.db.ProfileState(profile.ID), nil
}

// Logout clears the in-memory session. Persisted profile state is
// retained; only the auth record in the snapshot is reset.
func (m *Manager) Logout() {
	m.state = models.SessionState{}
	m.db.Auth = models.AuthState{}

	metrics.SessionTransitions.WithLabelValues("logout").Inc()
	logging.Info().Msg("Logged out")
}

// SwitchProfile moves the session to another configured profile and
// returns the target profile with its persisted state. It requires an
// authenticated session and rejects ids outside the fixed profile set.
func (m *Manager) SwitchProfile(profileID int) (*models.Profile, *models.ProfileState, error) {
	if !m.state.IsAuthenticated {
		return nil, nil, ErrNotAuthenticated
	}
	profile, ok := m.profile(profileID)
	if !ok {
		return nil, nil, fmt.Errorf("profile %d: %w", profileID, ErrUnknownProfile)
	}

	m.state.ActiveProfileID = profile.ID
	m.db.Auth.ActiveProfileID = profile.ID

	metrics.SessionTransitions.WithLabelValues("switch_profile").Inc()
	logging.Info().Int("profile_id", profile.ID).Msg("Switched profile")

	return &profile, m.db.ProfileState(profile.ID), nil
}

// IsAuthenticated reports whether a session is active.
func (m *Manager) IsAuthenticated() bool {
	return m.state.IsAuthenticated
}

// ActiveProfile returns the active profile, or false when Anonymous.
func (m *Manager) ActiveProfile() (*models.Profile, bool) {
	if !m.state.IsAuthenticated {
		return nil, false
	}
	p, ok := m.profile(m.state.ActiveProfileID)
	if !ok {
		return nil, false
	}
	return &p, true
}

// ActiveState returns the active profile's persisted state, or false
// when Anonymous.
func (m *Manager) ActiveState() (*models.ProfileState, bool) {
	if !m.state.IsAuthenticated {
		return nil, false
	}
	return m.db.ProfileState(m.state.ActiveProfileID), true
}

// Profiles returns the fixed profile set.
func (m *Manager) Profiles() []models.Profile {
	return m.profiles
}

// profile looks up a profile by id in the fixed set.
func (m *Manager) profile(id int) (models.Profile, bool) {
	for _, p := range m.profiles {
		if p.ID == id {
			return p, true
		}
	}
	return models.Profile{}, false
}
