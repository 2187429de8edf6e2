// Package photos resolves subject names to photo URLs for the podium view.
//
// The mapping is an injected value loaded once at startup; nothing in this
// package keeps process-wide mutable state. Lookup is exact-match on the
// trimmed subject name, with an initials fallback for unknown subjects.
package photos

import (
	"fmt"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Book maps subject names to photo URLs.
type Book struct {
	byName map[string]string
}

// Empty returns a Book with no entries; every lookup falls back to initials.
func Empty() *Book {
	return &Book{byName: make(map[string]string)}
}

// FromMap builds a Book from an in-memory mapping.
func FromMap(m map[string]string) *Book {
	byName := make(map[string]string, len(m))
	for name, url := range m {
		byName[strings.TrimSpace(name)] = url
	}
	return &Book{byName: byName}
}

// LoadFile reads a YAML file of `name: url` pairs.
func LoadFile(path string) (*Book, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read photo book: %w", err)
	}
	var m map[string]string
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse photo book: %w", err)
	}
	return FromMap(m), nil
}

// Lookup returns the photo URL for name and whether one exists.
func (b *Book) Lookup(name string) (string, bool) {
	url, ok := b.byName[strings.TrimSpace(name)]
	return url, ok
}

// Len returns the number of mapped subjects.
func (b *Book) Len() int { return len(b.byName) }

// Initials derives the fallback display for subjects without a photo: the
// first letter of the first two words, uppercased.
func Initials(name string) string {
	var sb strings.Builder
	for i, word := range strings.Fields(name) {
		if i == 2 {
			break
		}
		r, _ := utf8.DecodeRuneInString(word)
		if r == utf8.RuneError {
			continue
		}
		sb.WriteRune(unicode.ToUpper(r))
	}
	return sb.String()
}
