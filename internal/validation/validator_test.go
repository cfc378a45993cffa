// Theatrum - Streaming Front-End View-State Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/theatrum

package validation

import (
	"strings"
	"testing"
)

type rateRequest struct {
	ContentID int `validate:"min=1"`
	Rating    int `validate:"min=1,max=5"`
}

func TestValidateStruct_Valid(t *testing.T) {
	req := rateRequest{ContentID: 3, Rating: 4}
	if err := ValidateStruct(&req); err != nil {
		t.Errorf("Expected valid request, got: %v", err)
	}
}

func TestValidateStruct_RatingBounds(t *testing.T) {
	tests := []struct {
		name   string
		rating int
		valid  bool
	}{
		{"below minimum", 0, false},
		{"minimum", 1, true},
		{"maximum", 5, true},
		{"above maximum", 6, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := rateRequest{ContentID: 1, Rating: tt.rating}
			err := ValidateStruct(&req)
			if tt.valid && err != nil {
				t.Errorf("Expected rating %d to validate, got: %v", tt.rating, err)
			}
			if !tt.valid && err == nil {
				t.Errorf("Expected rating %d to be rejected", tt.rating)
			}
		})
	}
}

func TestValidateStruct_MultipleErrors(t *testing.T) {
	req := rateRequest{ContentID: 0, Rating: 9}
	verr := ValidateStruct(&req)
	if verr == nil {
		t.Fatal("Expected validation failure")
	}
	if len(verr.Errors()) != 2 {
		t.Fatalf("Expected 2 field errors, got %d", len(verr.Errors()))
	}

	apiErr := verr.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Expected VALIDATION_ERROR code, got %q", apiErr.Code)
	}
	if len(apiErr.Details) != 2 {
		t.Errorf("Expected details for both fields, got %v", apiErr.Details)
	}
	if !strings.Contains(apiErr.Message, "Rating must be at most 5") {
		t.Errorf("Expected translated rating message, got %q", apiErr.Message)
	}
}
