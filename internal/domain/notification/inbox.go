package notification

import (
	"slices"
	"sort"

	"github.com/google/uuid"
)

// Inbox is the ordered, per-user collection of notifications. Entries are
// unique by id and kept in descending timestamp order, ties in insertion
// order. It is not safe for concurrent use.
type Inbox struct {
	items []Notification
	ids   map[uuid.UUID]struct{}
}

func NewInbox() *Inbox {
	return &Inbox{ids: make(map[uuid.UUID]struct{})}
}

// Replace seeds the inbox from a snapshot. Repeated ids keep their first
// occurrence.
func (b *Inbox) Replace(snapshot []Notification) {
	b.items = make([]Notification, 0, len(snapshot))
	b.ids = make(map[uuid.UUID]struct{}, len(snapshot))
	for _, n := range snapshot {
		if _, dup := b.ids[n.id]; dup {
			continue
		}
		b.ids[n.id] = struct{}{}
		b.items = append(b.items, n)
	}
	slices.SortStableFunc(b.items, func(a, c Notification) int {
		return c.timestamp.Compare(a.timestamp)
	})
}

// Merge inserts n at its ordered position. It returns false and leaves the
// inbox untouched when an entry with the same id already exists.
func (b *Inbox) Merge(n Notification) bool {
	if _, dup := b.ids[n.id]; dup {
		return false
	}
	// first entry strictly older than n; equal timestamps stay ahead of n
	pos := sort.Search(len(b.items), func(i int) bool {
		return b.items[i].timestamp.Before(n.timestamp)
	})
	b.items = slices.Insert(b.items, pos, n)
	b.ids[n.id] = struct{}{}
	return true
}

// SetRead updates the read flag in place. It returns false if id is unknown.
func (b *Inbox) SetRead(id uuid.UUID, isRead bool) bool {
	i := b.indexOf(id)
	if i < 0 {
		return false
	}
	b.items[i].isRead = isRead
	return true
}

// SetAllRead marks every entry read and returns how many changed.
func (b *Inbox) SetAllRead() int {
	changed := 0
	for i := range b.items {
		if !b.items[i].isRead {
			b.items[i].isRead = true
			changed++
		}
	}
	return changed
}

func (b *Inbox) Remove(id uuid.UUID) bool {
	i := b.indexOf(id)
	if i < 0 {
		return false
	}
	b.items = slices.Delete(b.items, i, i+1)
	delete(b.ids, id)
	return true
}

// Clear empties the inbox and returns the ids it held.
func (b *Inbox) Clear() []uuid.UUID {
	removed := make([]uuid.UUID, 0, len(b.items))
	for _, n := range b.items {
		removed = append(removed, n.id)
	}
	b.items = nil
	b.ids = make(map[uuid.UUID]struct{})
	return removed
}

func (b *Inbox) Get(id uuid.UUID) (Notification, bool) {
	i := b.indexOf(id)
	if i < 0 {
		return Notification{}, false
	}
	return b.items[i], true
}

func (b *Inbox) Has(id uuid.UUID) bool {
	_, ok := b.ids[id]
	return ok
}

func (b *Inbox) Len() int { return len(b.items) }

// Items returns a copy of the entries in display order.
func (b *Inbox) Items() []Notification {
	return slices.Clone(b.items)
}

// UnreadCount is derived from the entries on every call.
func (b *Inbox) UnreadCount() int {
	count := 0
	for _, n := range b.items {
		if !n.isRead {
			count++
		}
	}
	return count
}

func (b *Inbox) indexOf(id uuid.UUID) int {
	if _, ok := b.ids[id]; !ok {
		return -1
	}
	return slices.IndexFunc(b.items, func(n Notification) bool { return n.id == id })
}
