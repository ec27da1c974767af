// Package location holds the canonical registry of campus locations used
// by the report form and the map view.
package location

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"
)

// UnknownID is the reserved bucket for items whose location cannot be
// resolved.
const UnknownID = "unknown"

// Location is a named campus area. X and Y are percentages of the map
// image width and height.
type Location struct {
	ID         string  `yaml:"id" json:"id"`
	Name       string  `yaml:"name" json:"name"`
	X          float64 `yaml:"x" json:"x"`
	Y          float64 `yaml:"y" json:"y"`
	Selectable bool    `yaml:"selectable" json:"selectable"`
}

// Registry is an ordered, read-only set of locations. Order matters: it is
// the order of the report dropdown, of the map legend, and of text matching.
type Registry struct {
	locations []Location
	byID      map[string]int
}

type registryFile struct {
	Locations []Location `yaml:"locations"`
}

// Parse builds a registry from its YAML representation.
func Parse(data []byte) (*Registry, error) {
	var f registryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing locations: %w", err)
	}
	return New(f.Locations)
}

// New builds a registry from locations, appending the unknown bucket when
// the list does not define it.
func New(locations []Location) (*Registry, error) {
	r := &Registry{byID: make(map[string]int, len(locations)+1)}

	for _, loc := range locations {
		loc.ID = strings.TrimSpace(loc.ID)
		loc.Name = strings.TrimSpace(loc.Name)
		if loc.ID == "" || loc.Name == "" {
			return nil, fmt.Errorf("location %q: id and name are required", loc.ID)
		}
		if loc.X < 0 || loc.X > 100 || loc.Y < 0 || loc.Y > 100 {
			return nil, fmt.Errorf("location %q: coordinates must be within 0-100", loc.ID)
		}
		key := fold(loc.ID)
		if _, dup := r.byID[key]; dup {
			return nil, fmt.Errorf("location %q: duplicate id", loc.ID)
		}
		if key == UnknownID {
			loc.Selectable = false
		}
		r.byID[key] = len(r.locations)
		r.locations = append(r.locations, loc)
	}

	if _, ok := r.byID[UnknownID]; !ok {
		r.byID[UnknownID] = len(r.locations)
		r.locations = append(r.locations, Location{ID: UnknownID, Name: "Other / Unknown", X: 5, Y: 5})
	}

	return r, nil
}

// All returns every location in registry order.
func (r *Registry) All() []Location {
	out := make([]Location, len(r.locations))
	copy(out, r.locations)
	return out
}

// Selectable returns the locations offered when reporting an item.
func (r *Registry) Selectable() []Location {
	var out []Location
	for _, loc := range r.locations {
		if loc.Selectable {
			out = append(out, loc)
		}
	}
	return out
}

// Lookup finds a location by id, ignoring case.
func (r *Registry) Lookup(id string) (Location, bool) {
	i, ok := r.byID[fold(strings.TrimSpace(id))]
	if !ok {
		return Location{}, false
	}
	return r.locations[i], true
}

// DisplayName returns the name of the location with the given id, or the id
// itself when the registry does not know it.
func (r *Registry) DisplayName(id string) string {
	if loc, ok := r.Lookup(id); ok {
		return loc.Name
	}
	return id
}

// Resolve returns the map bucket for an item. A non-empty locationID is used
// as is (canonicalized when the registry knows it). Otherwise the first
// location, in registry order, whose name occurs in locationText wins, and
// UnknownID is returned when nothing matches.
func (r *Registry) Resolve(locationID, locationText string) string {
	if id := strings.TrimSpace(locationID); id != "" {
		if loc, ok := r.Lookup(id); ok {
			return loc.ID
		}
		return id
	}

	text := fold(locationText)
	if text == "" {
		return UnknownID
	}
	for _, loc := range r.locations {
		if strings.Contains(text, fold(loc.Name)) {
			return loc.ID
		}
	}
	return UnknownID
}

func fold(s string) string {
	return cases.Fold().String(s)
}
