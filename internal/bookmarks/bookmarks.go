// Package bookmarks holds the set of bookmarked course ids and its
// persistence in the key-value store.
package bookmarks

import (
	"encoding/json"
	"fmt"
	"slices"

	"studyhub/internal/domain"
	"studyhub/internal/kvstore"
)

// Key is the store key the set is persisted under.
const Key = "bookmarkedCourses"

// Set is an immutable set of course ids that remembers insertion order.
// The zero value is the empty set.
type Set struct {
	ids []int
}

func New(ids ...int) Set {
	var s Set
	for _, id := range ids {
		if !s.Has(id) {
			s.ids = append(s.ids, id)
		}
	}
	return s
}

func (s Set) Has(id int) bool { return slices.Contains(s.ids, id) }

func (s Set) Len() int { return len(s.ids) }

// IDs returns a copy of the members in the order they were added.
func (s Set) IDs() []int {
	out := make([]int, len(s.ids))
	copy(out, s.ids)
	return out
}

// Equal reports set equality; order is ignored.
func (s Set) Equal(other Set) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, id := range s.ids {
		if !other.Has(id) {
			return false
		}
	}
	return true
}

// Toggle removes id if present and appends it otherwise. The id does not
// have to exist in any catalog.
func Toggle(s Set, id int) Set {
	if i := slices.Index(s.ids, id); i >= 0 {
		return Set{ids: slices.Delete(slices.Clone(s.ids), i, i+1)}
	}
	return Set{ids: append(slices.Clone(s.ids), id)}
}

// Load reads the set from the store. A missing, unreadable or malformed
// value yields the empty set.
func Load(store kvstore.Store) Set {
	raw, ok, err := store.Get(Key)
	if err != nil || !ok {
		return Set{}
	}
	var ids []int
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return Set{}
	}
	return New(ids...)
}

// Save replaces the stored set.
func Save(store kvstore.Store, s Set) error {
	ids := s.IDs()
	b, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("bookmarks: marshal: %w", err)
	}
	if err := store.Set(Key, string(b)); err != nil {
		return fmt.Errorf("bookmarks: save: %w", err)
	}
	return nil
}

// Select returns the bookmarked courses in catalog order.
func Select(courses []domain.Course, s Set) []domain.Course {
	out := make([]domain.Course, 0, s.Len())
	for _, c := range courses {
		if s.Has(c.ID) {
			out = append(out, c)
		}
	}
	return out
}

// Bookmarks is one client session's view of the persisted set. Every toggle
// is written through to the store before it returns.
type Bookmarks struct {
	store kvstore.Store
	set   Set
}

// Open loads the current set from store.
func Open(store kvstore.Store) *Bookmarks {
	return &Bookmarks{store: store, set: Load(store)}
}

func (b *Bookmarks) Set() Set { return b.set }

func (b *Bookmarks) Has(id int) bool { return b.set.Has(id) }

// Toggle flips id and persists the result. On a failed write the in-memory
// set is left unchanged so it keeps matching what is stored.
func (b *Bookmarks) Toggle(id int) (bookmarked bool, err error) {
	next := Toggle(b.set, id)
	if err := Save(b.store, next); err != nil {
		return b.set.Has(id), err
	}
	b.set = next
	return next.Has(id), nil
}
