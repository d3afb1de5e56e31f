// Package convention decides which names a project treats as constants.
//
// A constant name is assumed never to be reassigned after initialization,
// which lets the analyzer treat reads of it as immune to side effects.
package convention

import (
	"fmt"
	"strings"
	"unicode"
)

// CodingConvention is the naming oracle consulted by the analyzer and by
// node builders.
type CodingConvention interface {
	// IsConstant reports whether a variable name denotes a constant.
	IsConstant(name string) bool

	// IsConstantKey reports whether a property name denotes a constant.
	IsConstantKey(key string) bool
}

// Default treats no name as constant.
type Default struct{}

func (Default) IsConstant(string) bool    { return false }
func (Default) IsConstantKey(string) bool { return false }

// Closure treats ALL_CAPS names as constants. A "$" acts as a namespace
// separator, so "ns$MAX_SIZE" is constant as well.
type Closure struct{}

const inlinedConstantSuffix = "$$constant"

func (c Closure) IsConstant(name string) bool {
	if len(name) <= 1 {
		return false
	}
	if strings.HasSuffix(name, inlinedConstantSuffix) {
		return true
	}
	if pos := strings.LastIndexByte(name, '$'); pos >= 0 {
		name = name[pos+1:]
		if name == "" {
			return false
		}
	}
	return c.IsConstantKey(name)
}

func (Closure) IsConstantKey(key string) bool {
	if key == "" {
		return false
	}
	first := []rune(key)[0]
	if !unicode.IsUpper(first) {
		return false
	}
	return strings.ToUpper(key) == key
}

// Set adds explicitly listed constant names on top of another convention.
type Set struct {
	Base  CodingConvention
	Names map[string]bool
}

// NewSet creates a Set over base. A nil base means Default.
func NewSet(base CodingConvention, names ...string) *Set {
	if base == nil {
		base = Default{}
	}
	s := &Set{Base: base, Names: make(map[string]bool, len(names))}
	for _, n := range names {
		s.Names[n] = true
	}
	return s
}

func (s *Set) IsConstant(name string) bool {
	return s.Names[name] || s.Base.IsConstant(name)
}

func (s *Set) IsConstantKey(key string) bool {
	return s.Names[key] || s.Base.IsConstantKey(key)
}

// ByName returns the convention called name: "default" or "closure".
// The empty string selects Default.
func ByName(name string) (CodingConvention, error) {
	switch strings.ToLower(name) {
	case "", "default":
		return Default{}, nil
	case "closure", "google":
		return Closure{}, nil
	}
	return nil, fmt.Errorf("unknown coding convention %q", name)
}
