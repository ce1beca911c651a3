package inputval

import (
	"testing"

	"github.com/dalemusser/campanion/internal/app/system/apperr"
)

func TestIsValidHTTPURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		// Valid URLs
		{"http://example.com", true},
		{"https://example.com", true},
		{"https://example.com/camps?season=summer", true},
		{"http://localhost:8080", true},

		// Valid with whitespace (trimmed)
		{"  https://example.com  ", true},

		// Invalid URLs
		{"", false},
		{"   ", false},
		{"ftp://example.com", false},
		{"mailto:user@example.com", false},
		{"example.com", false},
		{"//example.com", false},
		{"not a url", false},
		{"file:///path/to/file", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got := IsValidHTTPURL(tt.url)
			if got != tt.want {
				t.Errorf("IsValidHTTPURL(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	type TestInput struct {
		Name  string  `json:"name" validate:"required,max=10" label:"Camp name"`
		Price float64 `json:"price" validate:"gte=0" label:"Price"`
		Link  string  `json:"link" validate:"omitempty,httpurl" label:"Link"`
	}

	tests := []struct {
		name       string
		input      TestInput
		wantErrors bool
		wantFirst  string
		wantField  string
	}{
		{
			name:  "valid input",
			input: TestInput{Name: "Lakeside", Price: 100},
		},
		{
			name:       "missing name",
			input:      TestInput{Name: ""},
			wantErrors: true,
			wantFirst:  "Camp name is required.",
			wantField:  "name",
		},
		{
			name:       "name too long",
			input:      TestInput{Name: "VeryLongNameThatExceedsLimit"},
			wantErrors: true,
			wantFirst:  "Camp name must be at most 10 characters.",
			wantField:  "name",
		},
		{
			name:       "negative price",
			input:      TestInput{Name: "Lakeside", Price: -1},
			wantErrors: true,
			wantFirst:  "Price must not be negative.",
			wantField:  "price",
		},
		{
			name:       "bad link",
			input:      TestInput{Name: "Lakeside", Link: "javascript:alert(1)"},
			wantErrors: true,
			wantFirst:  "Link must be an http or https URL.",
			wantField:  "link",
		},
		{
			name:  "empty link allowed",
			input: TestInput{Name: "Lakeside", Link: ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(tt.input)

			if result.HasErrors() != tt.wantErrors {
				t.Fatalf("Validate() HasErrors = %v, want %v (%v)", result.HasErrors(), tt.wantErrors, result.Errors)
			}
			if !tt.wantErrors {
				return
			}
			if result.First() != tt.wantFirst {
				t.Errorf("Validate() First() = %q, want %q", result.First(), tt.wantFirst)
			}
			if result.Errors[0].Field != tt.wantField {
				t.Errorf("Validate() field = %q, want %q", result.Errors[0].Field, tt.wantField)
			}
		})
	}
}

func TestResult_All(t *testing.T) {
	t.Run("no errors", func(t *testing.T) {
		r := &Result{}
		if r.All() != "" {
			t.Errorf("All() = %q, want empty", r.All())
		}
	})

	t.Run("multiple errors", func(t *testing.T) {
		r := &Result{
			Errors: []FieldError{
				{Message: "Error 1"},
				{Message: "Error 2"},
			},
		}
		want := "Error 1; Error 2"
		if r.All() != want {
			t.Errorf("All() = %q, want %q", r.All(), want)
		}
	})
}

func TestResult_Err(t *testing.T) {
	if err := (&Result{}).Err(); err != nil {
		t.Errorf("Err() on empty result = %v, want nil", err)
	}
	r := &Result{Errors: []FieldError{{Field: "price", Message: "Price must not be negative."}}}
	err := r.Err()
	if !apperr.IsValidation(err) {
		t.Fatalf("Err() = %v, want validation error", err)
	}
	if f := apperr.Fields(err); len(f) != 1 || f[0].Field != "price" {
		t.Errorf("fields = %+v", f)
	}
}
