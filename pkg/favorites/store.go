// Package favorites implements the ordered favorites list as a typed view
// over a decoded keyed archive. All mutations happen in place on the
// archive tree; persisting the result is the caller's concern.
package favorites

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/shelftools/fav/pkg/bookmark"
	"github.com/shelftools/fav/pkg/keyarch"
)

// Store operates on the items sequence inside a decoded archive. It is not
// safe for concurrent use; exactly one invocation owns the archive between
// load and save.
type Store struct {
	root  *keyarch.Map
	items *keyarch.Sequence
	marks bookmark.Codec
}

// Open wraps a decoded archive root. The root must be a dictionary holding
// an items array.
func Open(root keyarch.Value, marks bookmark.Codec) (*Store, error) {
	m, ok := root.(*keyarch.Map)
	if !ok {
		return nil, &keyarch.StructureError{Msg: "archive root is not a dictionary"}
	}
	v, ok := m.Get(keyItems)
	if !ok {
		return nil, &keyarch.StructureError{Msg: "archive has no items entry"}
	}
	seq, ok := v.(*keyarch.Sequence)
	if !ok {
		return nil, &keyarch.StructureError{Msg: "archive items entry is not an array"}
	}
	return &Store{root: m, items: seq, marks: marks}, nil
}

// Entry is one resolved row of the favorites list.
type Entry struct {
	UUID       string `json:"uuid"`
	Path       string `json:"path"`
	Stale      bool   `json:"stale,omitempty"`
	Visibility int64  `json:"visibility"`
}

// List resolves every entry in stored order. Entries without a usable
// bookmark, or whose token cannot be parsed, are skipped with a warning
// rather than failing the whole listing.
func (s *Store) List() []Entry {
	entries := make([]Entry, 0, s.items.Len())
	for i, v := range s.items.Values() {
		it, ok := itemView(v)
		if !ok {
			logrus.Warnf("skipping malformed favorites entry at index %d", i)
			continue
		}
		path, stale, err := s.marks.Decode(it.Token)
		if err != nil {
			logrus.Warnf("skipping favorites entry %s: %v", it.UUID, err)
			continue
		}
		entries = append(entries, Entry{
			UUID:       it.UUID,
			Path:       path,
			Stale:      stale,
			Visibility: it.Visibility,
		})
	}
	return entries
}

// Len returns the number of stored entries, malformed ones included.
func (s *Store) Len() int { return s.items.Len() }

// Add normalizes path, mints a location token for it, and appends a new item
// at the end of the list. Adding a path that resolves to an existing entry
// fails: the list holds no duplicates by target.
func (s *Store) Add(path string) (*Item, error) {
	norm, err := normalizePath(path)
	if err != nil {
		return nil, err
	}
	token, err := s.marks.Encode(norm)
	if err != nil {
		return nil, err
	}
	if s.indexOf(norm) >= 0 {
		return nil, &PathError{Path: norm, Msg: "already exists"}
	}

	it := &Item{
		UUID:       uuid.NewString(),
		Token:      token,
		Visibility: 0,
		// Writing a properties map on the Desktop entry makes the consuming
		// UI hide it, so that one entry is stored without the map.
		HasProperties: filepath.Base(norm) != "Desktop",
	}
	s.items.Append(itemValue(it))
	return it, nil
}

// AddResult is the per-path outcome of AddAll.
type AddResult struct {
	Path string
	Item *Item
	Err  error
}

// AddAll attempts each path independently: one failure does not stop the
// rest. The returned error is non-nil only when every path failed, so the
// caller knows there is nothing worth persisting.
func (s *Store) AddAll(paths []string) ([]AddResult, error) {
	results := make([]AddResult, 0, len(paths))
	failed := 0
	for _, p := range paths {
		item, err := s.Add(p)
		if err != nil {
			failed++
		}
		results = append(results, AddResult{Path: p, Item: item, Err: err})
	}
	if len(paths) > 0 && failed == len(paths) {
		return results, fmt.Errorf("no paths could be added")
	}
	return results, nil
}

// Remove deletes the first entry resolving to path and reports whether one
// was found. No match is not an error. At most one entry is removed, even
// if the list somehow holds duplicates.
func (s *Store) Remove(path string) (bool, error) {
	norm, err := normalizePath(path)
	if err != nil {
		return false, err
	}
	i := s.indexOf(norm)
	if i < 0 {
		return false, nil
	}
	s.items.RemoveAt(i)
	return true, nil
}

// Clear replaces the items sequence with an empty one. The archive's
// top-level properties are untouched.
func (s *Store) Clear() {
	s.items = keyarch.NewSequence()
	s.root.Set(keyItems, s.items)
}

// indexOf returns the position of the first entry whose token resolves to
// path, or -1. Every stored token is decoded through the collaborator on
// each call; list sizes are tens of entries and the collaborator owns the
// staleness semantics, so nothing is cached.
func (s *Store) indexOf(path string) int {
	for i, v := range s.items.Values() {
		it, ok := itemView(v)
		if !ok {
			continue
		}
		resolved, _, err := s.marks.Decode(it.Token)
		if err != nil {
			logrus.Debugf("unresolvable token on entry %s: %v", it.UUID, err)
			continue
		}
		if resolved == path {
			return i
		}
	}
	return -1
}

// normalizePath expands a leading ~ and returns the cleaned absolute form.
func normalizePath(path string) (string, error) {
	if path == "" {
		return "", &PathError{Path: path, Msg: "empty path"}
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", &PathError{Path: path, Msg: "cannot resolve home directory", Err: err}
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &PathError{Path: path, Msg: "cannot make path absolute", Err: err}
	}
	return filepath.Clean(abs), nil
}
