// Package validate holds the pure validation rules applied before any
// store mutation. Functions here never touch the database; existence and
// uniqueness lookups are performed by the caller, which turns the result
// into the typed errors defined below.
package validate

import (
	"fmt"
)

// MissingFieldError reports a required field that was absent or empty.
type MissingFieldError struct {
	Field string
}

func (e MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// MissingImageError reports a map create without an attached image file.
type MissingImageError struct{}

func (e MissingImageError) Error() string {
	return "image file is required"
}

// DuplicateEmailError reports an employee email that is already taken.
type DuplicateEmailError struct {
	Email string
}

func (e DuplicateEmailError) Error() string {
	return fmt.Sprintf("employee with email %q already exists", e.Email)
}

// CoordinateRangeError reports a coordinate outside the closed [0,1] range.
type CoordinateRangeError struct {
	Axis  string
	Value float64
}

func (e CoordinateRangeError) Error() string {
	return fmt.Sprintf("%s coordinate must be between 0 and 1, got %v", e.Axis, e.Value)
}

// MapCreate checks the mandatory map fields. The image attachment is
// checked separately by the handler since it arrives as a multipart file.
func MapCreate(name, state, city, building, floor string) error {
	fields := []struct {
		name  string
		value string
	}{
		{"name", name},
		{"state", state},
		{"city", city},
		{"building", building},
		{"floor", floor},
	}
	for _, f := range fields {
		if f.value == "" {
			return MissingFieldError{Field: f.name}
		}
	}

	return nil
}

// EmployeeCreate checks the mandatory employee fields.
func EmployeeCreate(name, phone, email string) error {
	fields := []struct {
		name  string
		value string
	}{
		{"name", name},
		{"phone", phone},
		{"email", email},
	}
	for _, f := range fields {
		if f.value == "" {
			return MissingFieldError{Field: f.name}
		}
	}

	return nil
}

// Coordinate checks a single axis value against the closed [0,1] interval.
func Coordinate(axis string, value float64) error {
	if value < 0 || value > 1 {
		return CoordinateRangeError{Axis: axis, Value: value}
	}

	return nil
}

// Coordinates checks both axes of a location pin. Nil pointers mean the
// axis was not supplied (partial update) and are skipped.
func Coordinates(x, y *float64) error {
	if x != nil {
		if err := Coordinate("x", *x); err != nil {
			return err
		}
	}
	if y != nil {
		if err := Coordinate("y", *y); err != nil {
			return err
		}
	}

	return nil
}
