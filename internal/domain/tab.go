// Package domain defines the core entities and collaborator contracts of tabsmith.
// It includes the tab record, the snapshot handed to the user interface, the
// cardinality limits of a tab collection, and the persistence and clipboard
// surfaces the application layer depends on.
package domain

import (
	"strconv"
	"strings"
)

const (
	// MinTabs is the smallest number of tabs a collection may hold.
	MinTabs = 1
	// MaxTabs is the largest number of tabs a collection may hold.
	MaxTabs = 15
	// StorageKey is the key under which the tab collection is persisted.
	StorageKey = "tabs-data"
	// UntitledLabel is shown in the editor for tabs with a blank title.
	UntitledLabel = "Untitled"
)

// Tab represents one editable tab.
type Tab struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// DisplayTitle returns the title to show in the editor. The stored title is left untouched.
func (t Tab) DisplayTitle() string {
	if strings.TrimSpace(t.Title) == "" {
		return UntitledLabel
	}
	return t.Title
}

// DefaultTitle returns the title assigned to the n-th tab at creation time.
func DefaultTitle(n int) string {
	return "Tab " + strconv.Itoa(n)
}

// Snapshot is a read-only copy of the tab collection and the active tab id.
type Snapshot struct {
	Tabs     []Tab  `json:"tabs"`
	ActiveID string `json:"activeId"`
}

// Active returns the active tab of the snapshot, falling back to the first one.
func (s Snapshot) Active() (Tab, bool) {
	for _, t := range s.Tabs {
		if t.ID == s.ActiveID {
			return t, true
		}
	}
	if len(s.Tabs) > 0 {
		return s.Tabs[0], true
	}
	return Tab{}, false
}

// CanAdd reports whether another tab fits in the collection.
func (s Snapshot) CanAdd() bool {
	return len(s.Tabs) < MaxTabs
}

// CanRemove reports whether the active tab may be removed.
func (s Snapshot) CanRemove() bool {
	return len(s.Tabs) > MinTabs
}
