// Theatrum - Streaming Front-End View-State Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/theatrum

package session

import (
	"github.com/tomtom215/theatrum/internal/models"
)

// DefaultProfiles is the fixed profile set for the simulated account.
// Profile creation is out of scope; the set never changes at runtime.
func DefaultProfiles() []models.Profile {
	return []models.Profile{
		{ID: 1, DisplayName: "Chris", AvatarRef: "https://picsum.photos/seed/avatar1/80/80"},
		{ID: 2, DisplayName: "Jane", AvatarRef: "https://picsum.photos/seed/avatar2/80/80"},
		{ID: 3, DisplayName: "Kids", AvatarRef: "https://picsum.photos/seed/avatar3/80/80"},
	}
}
