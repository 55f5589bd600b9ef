package models_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ventry/ventry/internal/models"
)

func TestCreateEventInputValidation(t *testing.T) {
	negative := -5
	zero := 0

	tests := []struct {
		name    string
		in      models.CreateEventInput
		wantErr bool
	}{
		{"valid", models.CreateEventInput{Title: "Launch", Date: "2025-06-01", Time: "18:00:00"}, false},
		{"zero expected attendees ok", models.CreateEventInput{Title: "Launch", Date: "2025-06-01", Time: "18:00:00", ExpectedAttendees: &zero}, false},
		{"missing title", models.CreateEventInput{Date: "2025-06-01", Time: "18:00:00"}, true},
		{"bad date format", models.CreateEventInput{Title: "x", Date: "01/06/2025", Time: "18:00:00"}, true},
		{"date-only time rejected", models.CreateEventInput{Title: "x", Date: "2025-06-01", Time: "18:00"}, true},
		{"negative expected attendees", models.CreateEventInput{Title: "x", Date: "2025-06-01", Time: "18:00:00", ExpectedAttendees: &negative}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.wantErr && !models.IsValidation(err) {
				t.Errorf("Validate() = %v, want ValidationError", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestAttendeeInputNormalize(t *testing.T) {
	in := models.AttendeeInput{Name: "  Alice Smith \n"}
	in.Normalize()
	if in.Name != "Alice Smith" {
		t.Errorf("Normalize left %q", in.Name)
	}
	if err := in.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	blank := models.AttendeeInput{Name: "   "}
	blank.Normalize()
	err := blank.Validate()
	if !models.IsValidation(err) {
		t.Fatalf("Validate() = %v, want ValidationError", err)
	}

	var ve *models.ValidationError
	if !errors.As(err, &ve) {
		t.Fatal("Expected *ValidationError")
	}
	if ve.Field != "Name" || ve.Rule != "required" {
		t.Errorf("ValidationError = %+v, want Name/required", ve)
	}
}

func TestValidationErrorIsDistinctKind(t *testing.T) {
	storageErr := fmt.Errorf("failed to insert attendee: %w", errors.New("disk I/O error"))
	if models.IsValidation(storageErr) {
		t.Error("Storage error misclassified as validation")
	}
	if models.IsValidation(models.ErrEventNotFound) {
		t.Error("Not-found misclassified as validation")
	}

	wrapped := fmt.Errorf("add attendee: %w", &models.ValidationError{Field: "Name", Rule: "required"})
	if !models.IsValidation(wrapped) {
		t.Error("Wrapped ValidationError not detected")
	}
}

func TestEventUpdateIsEmpty(t *testing.T) {
	if empty := (&models.EventUpdate{}); !empty.IsEmpty() {
		t.Error("Zero patch should be empty")
	}

	title := "x"
	if patch := (&models.EventUpdate{Title: &title}); patch.IsEmpty() {
		t.Error("Patch with a field should not be empty")
	}
}
