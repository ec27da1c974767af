package location

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	webembed "github.com/campuslf/lostfound/web"
)

const testYAML = `
locations:
  - {id: raider-stadium, name: Raider Stadium, x: 25, y: 32, selectable: true}
  - {id: stadium-entrance, name: Stadium Entrance, x: 42, y: 34, selectable: true}
  - {id: gym, name: Gym, x: 50, y: 60, selectable: true}
  - {id: 1000-hall, name: 1000 Hall, x: 65, y: 65, selectable: true}
  - {id: softball-field, name: Softball Field, x: 25, y: 12}
`

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := Parse([]byte(testYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return r
}

func ids(locs []Location) []string {
	out := make([]string, 0, len(locs))
	for _, l := range locs {
		out = append(out, l.ID)
	}
	return out
}

func TestParseAppendsUnknown(t *testing.T) {
	r := newTestRegistry(t)

	want := []string{"raider-stadium", "stadium-entrance", "gym", "1000-hall", "softball-field", UnknownID}
	if diff := cmp.Diff(want, ids(r.All())); diff != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectable(t *testing.T) {
	r := newTestRegistry(t)

	want := []string{"raider-stadium", "stadium-entrance", "gym", "1000-hall"}
	if diff := cmp.Diff(want, ids(r.Selectable())); diff != "" {
		t.Errorf("Selectable() mismatch (-want +got):\n%s", diff)
	}
}

func TestNewRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		locs []Location
	}{
		{"empty id", []Location{{Name: "Gym"}}},
		{"empty name", []Location{{ID: "gym"}}},
		{"duplicate id", []Location{{ID: "gym", Name: "Gym"}, {ID: "GYM", Name: "Gym 2"}}},
		{"x out of range", []Location{{ID: "gym", Name: "Gym", X: 101}}},
		{"y negative", []Location{{ID: "gym", Name: "Gym", Y: -1}}},
	}

	for _, tt := range tests {
		if _, err := New(tt.locs); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestDisplayName(t *testing.T) {
	r := newTestRegistry(t)

	tests := []struct {
		id   string
		want string
	}{
		{"gym", "Gym"},
		{"1000-Hall", "1000 Hall"},
		{"library", "library"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := r.DisplayName(tt.id); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestResolve(t *testing.T) {
	r := newTestRegistry(t)

	tests := []struct {
		name       string
		locationID string
		text       string
		want       string
	}{
		{"direct id", "gym", "Cafeteria", "gym"},
		{"legacy id case", "1000-Hall", "", "1000-hall"},
		{"unregistered id kept", "library", "", "library"},
		{"text match", "", "Gym Entrance", "gym"},
		{"text match case", "", "near the RAIDER STADIUM gate", "raider-stadium"},
		{"first match in registry order", "", "Raider Stadium / Stadium Entrance", "raider-stadium"},
		{"no match", "", "Library", UnknownID},
		{"empty text", "", "", UnknownID},
		{"whitespace id falls back to text", "  ", "gym", "gym"},
	}

	for _, tt := range tests {
		if got := r.Resolve(tt.locationID, tt.text); got != tt.want {
			t.Errorf("%s: Resolve(%q, %q) = %q, want %q", tt.name, tt.locationID, tt.text, got, tt.want)
		}
	}
}

func TestEmbeddedRegistry(t *testing.T) {
	r, err := Parse(webembed.LocationsYAML())
	if err != nil {
		t.Fatalf("parsing embedded locations: %v", err)
	}

	all := r.All()
	if all[len(all)-1].ID != UnknownID {
		t.Errorf("expected unknown bucket last, got %q", all[len(all)-1].ID)
	}
	for _, loc := range r.Selectable() {
		if loc.ID == UnknownID {
			t.Error("unknown bucket must not be selectable")
		}
	}
	if got := r.Resolve("", "Gym Entrance"); got != "gym" {
		t.Errorf("Resolve(Gym Entrance) = %q, want gym", got)
	}
}
