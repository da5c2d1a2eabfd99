package validator

import (
	"errors"
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31", "2025-06-10"}
	invalid := []string{"2023-13-01", "2023-02-30", "01-01-2023", "", "2023/01/01"}
	for _, d := range valid {
		if _, ok := IsValidDate(d); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", d)
		}
	}
	for _, d := range invalid {
		if _, ok := IsValidDate(d); ok {
			t.Errorf("IsValidDate(%q) = true, want false", d)
		}
	}
}

type sample struct {
	Name   string  `json:"name" validate:"required,max=5"`
	Email  string  `json:"email" validate:"required,email"`
	Reason string  `json:"reason" validate:"min=10"`
	Rating *int    `json:"rating" validate:"omitempty,min=1,max=10"`
	Day    string  `json:"day" validate:"omitempty,datetime=2006-01-02"`
	Note   *string `json:"-" validate:"omitempty,max=3"`
}

func TestStruct(t *testing.T) {
	rating := 11
	err := Struct(sample{Name: "toolong", Email: "nope", Reason: "short", Rating: &rating, Day: "2025/01/01"})

	var errs ValidationErrors
	if !errors.As(err, &errs) {
		t.Fatalf("Struct() error = %v, want ValidationErrors", err)
	}

	got := errs.ToMap()
	for _, field := range []string{"name", "email", "reason", "rating", "day"} {
		if _, ok := got[field]; !ok {
			t.Errorf("expected error for field %q, got %v", field, got)
		}
	}
	if got["reason"] != "reason must be at least 10 characters long" {
		t.Errorf("unexpected reason message %q", got["reason"])
	}
}

func TestStructValid(t *testing.T) {
	rating := 5
	err := Struct(sample{Name: "ann", Email: "ann@example.com", Reason: "long enough reason", Rating: &rating, Day: "2025-01-01"})
	if err != nil {
		t.Errorf("Struct() = %v, want nil", err)
	}
}

func TestValidationErrorsOrNil(t *testing.T) {
	var errs ValidationErrors
	if errs.OrNil() != nil {
		t.Errorf("OrNil() on empty = non-nil")
	}
	errs.Add("field", "bad")
	if errs.OrNil() == nil {
		t.Errorf("OrNil() on non-empty = nil")
	}
	if errs.Error() != "field: bad" {
		t.Errorf("Error() = %q", errs.Error())
	}
}
