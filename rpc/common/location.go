package common

import (
	"fmt"
	"strings"
)

// --------------------------------------------------------------------------
// Mode
// --------------------------------------------------------------------------

// Mode is the run mode a location belongs to
type Mode uint8

const (
	ModeLive Mode = iota
	ModeData
	ModeReplay
	ModeBacktest
)

var modeNames = map[Mode]string{
	ModeLive:     "live",
	ModeData:     "data",
	ModeReplay:   "replay",
	ModeBacktest: "backtest",
}

// String returns the stable textual name of the mode
func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// ParseMode converts a textual name back to a Mode
func ParseMode(name string) (Mode, error) {
	for m, n := range modeNames {
		if n == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown mode %q", ErrAddressResolution, name)
}

// --------------------------------------------------------------------------
// Category
// --------------------------------------------------------------------------

// Category groups locations by the kind of process behind them
type Category uint8

const (
	CategoryMD Category = iota
	CategoryTD
	CategoryStrategy
	CategorySystem
)

var categoryNames = map[Category]string{
	CategoryMD:       "md",
	CategoryTD:       "td",
	CategoryStrategy: "strategy",
	CategorySystem:   "system",
}

// String returns the stable textual name of the category, used as a path segment
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Category(%d)", uint8(c))
}

// ParseCategory converts a textual name back to a Category
func ParseCategory(name string) (Category, error) {
	for c, n := range categoryNames {
		if n == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown category %q", ErrAddressResolution, name)
}

// --------------------------------------------------------------------------
// Location
// --------------------------------------------------------------------------

// Location is the logical identity of an endpoint. Two locations are the
// same endpoint iff all four fields are equal.
type Location struct {
	Mode     Mode
	Category Category
	Group    string
	Name     string
}

// Master is the fixed identity of the coordinator every client resolves against
var Master = Location{
	Mode:     ModeLive,
	Category: CategorySystem,
	Group:    "master",
	Name:     "master",
}

// NewLocation creates a validated location
func NewLocation(mode Mode, category Category, group, name string) (Location, error) {
	loc := Location{Mode: mode, Category: category, Group: group, Name: name}
	return loc, loc.Validate()
}

// Validate checks that every field is set to a known value
func (l Location) Validate() error {
	if _, ok := modeNames[l.Mode]; !ok {
		return fmt.Errorf("%w: invalid mode %d", ErrAddressResolution, l.Mode)
	}
	if _, ok := categoryNames[l.Category]; !ok {
		return fmt.Errorf("%w: invalid category %d", ErrAddressResolution, l.Category)
	}
	if l.Group == "" {
		return fmt.Errorf("%w: empty group", ErrAddressResolution)
	}
	if l.Name == "" {
		return fmt.Errorf("%w: empty name", ErrAddressResolution)
	}
	// group and name become path segments, they must not escape their directory
	for _, segment := range []string{l.Group, l.Name} {
		if strings.ContainsRune(segment, '/') || segment == "." || segment == ".." {
			return fmt.Errorf("%w: invalid path segment %q", ErrAddressResolution, segment)
		}
	}
	return nil
}

// String returns "mode/category/group/name"
func (l Location) String() string {
	return fmt.Sprintf("%s/%s/%s/%s", l.Mode, l.Category, l.Group, l.Name)
}
