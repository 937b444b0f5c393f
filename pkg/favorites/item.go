package favorites

import "github.com/shelftools/fav/pkg/keyarch"

// Archive keys. The item-level properties map shares its key with the
// archive-level one; they live in different dictionaries.
const (
	keyItems      = "items"
	keyUUID       = "uuid"
	keyBookmark   = "bookmark"
	keyVisibility = "visibility"
	keyProperties = "properties"
)

// Item is one favorites entry as stored in the archive's items sequence.
type Item struct {
	UUID          string
	Token         []byte
	Visibility    int64
	HasProperties bool
}

// itemValue builds the archive dictionary for an item. The properties map,
// when present, is written empty; its mere presence is what the consuming
// UI reacts to.
func itemValue(it *Item) *keyarch.Map {
	m := keyarch.NewMap()
	m.Set(keyUUID, keyarch.Text(it.UUID))
	m.Set(keyBookmark, keyarch.Blob(it.Token))
	m.Set(keyVisibility, keyarch.Integer(it.Visibility))
	if it.HasProperties {
		m.Set(keyProperties, keyarch.NewMap())
	}
	return m
}

// itemView reads an entry back out of the archive. Entries that are not a
// dictionary or lack a blob-typed bookmark are reported as unusable; other
// fields are best-effort, tolerating entries written by other tools.
func itemView(v keyarch.Value) (*Item, bool) {
	m, ok := v.(*keyarch.Map)
	if !ok {
		return nil, false
	}
	raw, ok := m.Get(keyBookmark)
	if !ok {
		return nil, false
	}
	blob, ok := raw.(keyarch.Blob)
	if !ok {
		return nil, false
	}

	it := &Item{Token: []byte(blob)}
	if v, ok := m.Get(keyUUID); ok {
		if t, ok := v.(keyarch.Text); ok {
			it.UUID = string(t)
		}
	}
	if v, ok := m.Get(keyVisibility); ok {
		if n, ok := v.(keyarch.Integer); ok {
			it.Visibility = int64(n)
		}
	}
	_, it.HasProperties = m.Get(keyProperties)
	return it, true
}
