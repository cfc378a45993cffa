// Theatrum - Streaming Front-End View-State Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/theatrum

package session

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/theatrum/internal/models"
)

func newManager(t *testing.T) (*Manager, *models.PersistedDatabase) {
	t.Helper()
	db := models.NewPersistedDatabase()
	return New(DefaultProfiles(), "", db), db
}

func TestLoginSelectsDefaultProfile(t *testing.T) {
	m, db := newManager(t)

	profile, state, err := m.Login("")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if profile.ID != 1 || profile.DisplayName != "Chris" {
		t.Errorf("Expected default profile Chris (1), got %q (%d)", profile.DisplayName, profile.ID)
	}
	if state == nil || len(state.Watchlist) != 0 {
		t.Errorf("Expected empty initial profile state, got %+v", state)
	}
	if !m.IsAuthenticated() {
		t.Error("Expected authenticated session after login")
	}
	if !db.Auth.IsAuthenticated || db.Auth.ActiveProfileID != 1 {
		t.Errorf("Expected snapshot auth updated, got %+v", db.Auth)
	}
}

func TestLogoutRetainsProfileState(t *testing.T) {
	m, db := newManager(t)

	_, state, err := m.Login("")
	if err != nil {
		t.Fatal(err)
	}
	state.Watchlist = append(state.Watchlist, 33)
	state.Ratings[33] = 5

	m.Logout()

	if m.IsAuthenticated() {
		t.Error("Expected anonymous session after logout")
	}
	if db.Auth.IsAuthenticated {
		t.Error("Expected snapshot auth cleared after logout")
	}
	// Persisted data survives logout.
	kept := db.ProfileState(1)
	if !kept.InWatchlist(33) || kept.Ratings[33] != 5 {
		t.Errorf("Expected profile state retained across logout, got %+v", kept)
	}
}

func TestLoginAfterLogoutRestoresState(t *testing.T) {
	m, _ := newManager(t)

	_, state, _ := m.Login("")
	state.Watchlist = append(state.Watchlist, 7, 12)
	state.Ratings[7] = 4
	m.Logout()

	_, restored, err := m.Login("")
	if err != nil {
		t.Fatal(err)
	}
	if !restored.InWatchlist(7) || !restored.InWatchlist(12) || restored.Ratings[7] != 4 {
		t.Errorf("Expected watchlist and ratings restored, got %+v", restored)
	}
}

func TestSwitchProfileIsolatesState(t *testing.T) {
	m, _ := newManager(t)

	_, stateA, _ := m.Login("")
	stateA.Watchlist = append(stateA.Watchlist, 1, 2)
	stateA.Ratings[1] = 5

	// Switch to B, make different edits.
	_, stateB, err := m.SwitchProfile(2)
	if err != nil {
		t.Fatalf("SwitchProfile failed: %v", err)
	}
	if len(stateB.Watchlist) != 0 {
		t.Errorf("Expected profile B to start empty, got %+v", stateB)
	}
	stateB.Watchlist = append(stateB.Watchlist, 9)
	stateB.Ratings[9] = 2

	// Back to A: edits by B must not leak into A.
	_, stateA2, err := m.SwitchProfile(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(stateA2.Watchlist) != 2 || stateA2.Ratings[1] != 5 {
		t.Errorf("Expected profile A state unchanged, got %+v", stateA2)
	}
	if stateA2.InWatchlist(9) {
		t.Error("Profile B's edits leaked into profile A")
	}
}

func TestSwitchProfileRequiresAuthentication(t *testing.T) {
	m, _ := newManager(t)

	_, _, err := m.SwitchProfile(2)
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("Expected ErrNotAuthenticated, got %v", err)
	}
}

func TestSwitchProfileRejectsUnknownID(t *testing.T) {
	m, _ := newManager(t)
	m.Login("")

	_, _, err := m.SwitchProfile(42)
	if !errors.Is(err, ErrUnknownProfile) {
		t.Errorf("Expected ErrUnknownProfile, got %v", err)
	}
	// Session stays on the previous profile.
	p, ok := m.ActiveProfile()
	if !ok || p.ID != 1 {
		t.Errorf("Expected session to remain on profile 1, got %+v", p)
	}
}

func TestPasswordGate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("opensesame"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	db := models.NewPersistedDatabase()
	m := New(DefaultProfiles(), string(hash), db)

	if _, _, err := m.Login("wrong"); !errors.Is(err, ErrInvalidPassword) {
		t.Errorf("Expected ErrInvalidPassword, got %v", err)
	}
	if m.IsAuthenticated() {
		t.Error("Failed login must not authenticate")
	}

	if _, _, err := m.Login("opensesame"); err != nil {
		t.Errorf("Expected correct password to log in, got %v", err)
	}
}

func TestRestore(t *testing.T) {
	tests := []struct {
		name string
		auth models.AuthState
		want bool
	}{
		{"anonymous snapshot", models.AuthState{}, false},
		{"valid session", models.AuthState{IsAuthenticated: true, ActiveProfileID: 2}, true},
		{"unknown profile", models.AuthState{IsAuthenticated: true, ActiveProfileID: 99}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := models.NewPersistedDatabase()
			db.Auth = tt.auth
			m := New(DefaultProfiles(), "", db)

			if got := m.Restore(); got != tt.want {
				t.Errorf("Restore() = %v, want %v", got, tt.want)
			}
			if m.IsAuthenticated() != tt.want {
				t.Errorf("IsAuthenticated() = %v, want %v", m.IsAuthenticated(), tt.want)
			}
			if tt.want {
				p, ok := m.ActiveProfile()
				if !ok || p.ID != tt.auth.ActiveProfileID {
					t.Errorf("Expected active profile %d, got %+v", tt.auth.ActiveProfileID, p)
				}
			}
		})
	}
}

func TestRestoreUnknownProfileClearsPersistedAuth(t *testing.T) {
	db := models.NewPersistedDatabase()
	db.Auth = models.AuthState{IsAuthenticated: true, ActiveProfileID: 99}
	m := New(DefaultProfiles(), "", db)

	m.Restore()
	if db.Auth.IsAuthenticated {
		t.Error("Expected invalid persisted auth to be cleared")
	}
}
