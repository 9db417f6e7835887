package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"
)

// groupsKey is the single key the ordered registry document lives under.
// Registry order is meaningful: filename suggestion picks the first match.
var groupsKey = []byte("registry")

// Group is a registry entry, richer than a bare checkpoint and keyed by a
// stable id rather than the free-text chat name. The two stores are
// updated independently and are not kept transactionally consistent.
type Group struct {
	ID                       string     `json:"id"`
	Name                     string     `json:"name"`
	LastSyncedAt             *time.Time `json:"lastSyncedAt"`
	LastSyncedMessagePreview string     `json:"lastSyncedMessagePreview,omitempty"`
}

// LoadGroups returns the registry in stored order. A missing or corrupt
// registry is rebuilt by seeding one group per existing checkpoint.
func (s *Store) LoadGroups() []Group {
	var raw []byte
	s.db.View(func(tx *bbolt.Tx) error {
		if b := tx.Bucket(groupsBucket); b != nil {
			if v := b.Get(groupsKey); v != nil {
				raw = append([]byte(nil), v...)
			}
		}
		return nil
	})

	if raw != nil {
		var groups []Group
		if err := json.Unmarshal(raw, &groups); err == nil {
			return groups
		}
	}
	return s.seedFromCheckpoints()
}

// seedFromCheckpoints builds a first-use registry out of whatever
// checkpoints already exist, sorted by name for determinism.
func (s *Store) seedFromCheckpoints() []Group {
	checkpoints := s.LoadCheckpoints()

	names := make([]string, 0, len(checkpoints))
	for name := range checkpoints {
		names = append(names, name)
	}
	sort.Strings(names)

	var groups []Group
	for _, name := range names {
		g := Group{ID: uuid.NewString(), Name: name}
		if t, ok := CheckpointTime(checkpoints, name); ok {
			g.LastSyncedAt = &t
		}
		groups = append(groups, g)
	}
	if len(groups) > 0 {
		s.SaveGroups(groups)
	}
	return groups
}

// SaveGroups replaces the registry wholesale, preserving slice order.
func (s *Store) SaveGroups(groups []Group) error {
	data, err := json.Marshal(groups)
	if err != nil {
		return fmt.Errorf("encode groups: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(groupsBucket).Put(groupsKey, data)
	})
}

// AddGroup creates a group, or returns the existing one with that exact
// name.
func (s *Store) AddGroup(name string) (Group, error) {
	groups := s.LoadGroups()
	for _, g := range groups {
		if g.Name == name {
			return g, nil
		}
	}

	g := Group{ID: uuid.NewString(), Name: name}
	groups = append(groups, g)
	if err := s.SaveGroups(groups); err != nil {
		return Group{}, err
	}
	return g, nil
}

// UpdateGroupSync records the last-synced instant and message preview for
// a group. Unknown ids are a no-op.
func (s *Store) UpdateGroupSync(groupID string, syncedAt time.Time, preview string) error {
	groups := s.LoadGroups()
	for i := range groups {
		if groups[i].ID == groupID {
			t := syncedAt
			groups[i].LastSyncedAt = &t
			groups[i].LastSyncedMessagePreview = preview
			return s.SaveGroups(groups)
		}
	}
	return nil
}

// SuggestGroup picks the group whose name appears case-insensitively
// inside the export filename; first match in registry order wins.
func SuggestGroup(filename string, groups []Group) (Group, bool) {
	lower := strings.ToLower(filename)
	for _, g := range groups {
		if g.Name != "" && strings.Contains(lower, strings.ToLower(g.Name)) {
			return g, true
		}
	}
	return Group{}, false
}

// FindGroup resolves a group by id or exact name.
func FindGroup(groups []Group, idOrName string) (Group, bool) {
	for _, g := range groups {
		if g.ID == idOrName || g.Name == idOrName {
			return g, true
		}
	}
	return Group{}, false
}
