package status

import (
	"encoding/json"
	"testing"

	"github.com/dalemusser/campanion/internal/app/system/apperr"
)

func TestOf_Totality(t *testing.T) {
	tests := []struct {
		in   string
		want Display
	}{
		{"draft", DisplayDraft},
		{"active", DisplayActive},
		{"archive", DisplayArchived},

		// Anything else falls back to Draft.
		{"", DisplayDraft},
		{"archived", DisplayDraft},
		{"Active", DisplayDraft},
		{"published", DisplayDraft},
		{" active", DisplayDraft},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Of(tt.in); got != tt.want {
				t.Errorf("Of(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestClassify_UnknownArm(t *testing.T) {
	for _, s := range []string{"", "deleted", "ACTIVE"} {
		if got := Classify(s); got != DisplayUnknown {
			t.Errorf("Classify(%q) = %v, want Unknown", s, got)
		}
	}
	if got := Classify("archive"); got != DisplayArchived {
		t.Errorf("Classify(archive) = %v, want Archived", got)
	}
}

func TestStrict(t *testing.T) {
	if d, err := Strict("active"); err != nil || d != DisplayActive {
		t.Errorf("Strict(active) = %v, %v", d, err)
	}
	d, err := Strict("bogus")
	if d != DisplayUnknown {
		t.Errorf("Strict(bogus) display = %v, want Unknown", d)
	}
	if !apperr.IsValidation(err) {
		t.Fatalf("Strict(bogus) err = %v, want validation error", err)
	}
	if f := apperr.Fields(err); len(f) != 1 || f[0].Field != "status" {
		t.Errorf("fields = %+v, want status", f)
	}
}

func TestRank(t *testing.T) {
	if !(DisplayActive.Rank() < DisplayDraft.Rank() && DisplayDraft.Rank() < DisplayArchived.Rank()) {
		t.Error("expected Active < Draft < Archived")
	}
	if DisplayUnknown.Rank() != DisplayDraft.Rank() {
		t.Error("Unknown should rank with Draft")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"draft", "draft", true},
		{"  ACTIVE ", "active", true},
		{"Archive", "archive", true},
		{"archived", "archived", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := Parse(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Parse(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestInitial(t *testing.T) {
	if !Initial(Draft) || !Initial(Active) {
		t.Error("draft and active are valid initial states")
	}
	if Initial(Archive) || Initial("x") {
		t.Error("archive is not an initial state")
	}
}

func TestDisplay_JSON(t *testing.T) {
	b, err := json.Marshal(map[string]Display{"s": DisplayArchived})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"s":"Archived"}` {
		t.Errorf("got %s", b)
	}
}
