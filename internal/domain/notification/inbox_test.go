//go:build unit

package notification_test

import (
	"math/rand"
	"testing"

	"gigboard-notify/internal/domain/notification"
	"gigboard-notify/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInbox_Replace(t *testing.T) {
	userID := uuid.New()

	t.Run("sorts descending and keeps first duplicate", func(t *testing.T) {
		older := builder.NewNotificationBuilder().WithUserID(userID).At(50).BuildDomain()
		newer := builder.NewNotificationBuilder().WithUserID(userID).At(100).BuildDomain()
		dupOfOlder := builder.NewNotificationBuilder().WithID(older.ID()).WithUserID(userID).At(50).Read().BuildDomain()

		inbox := notification.NewInbox()
		inbox.Replace([]notification.Notification{older, newer, dupOfOlder})

		require.Equal(t, 2, inbox.Len())
		assert.Equal(t, []uuid.UUID{newer.ID(), older.ID()}, builder.IDs(inbox.Items()))
		got, _ := inbox.Get(older.ID())
		assert.False(t, got.IsRead())
		assert.Equal(t, 2, inbox.UnreadCount())
	})

	t.Run("equal timestamps keep snapshot order", func(t *testing.T) {
		ns := builder.Notifications(userID, 10, 10, 10)

		inbox := notification.NewInbox()
		inbox.Replace(ns)

		assert.Equal(t, builder.IDs(ns), builder.IDs(inbox.Items()))
	})

	t.Run("replace discards previous state", func(t *testing.T) {
		inbox := notification.NewInbox()
		first := builder.Notifications(userID, 1, 2)
		inbox.Replace(first)
		inbox.Replace(nil)

		assert.Equal(t, 0, inbox.Len())
		assert.False(t, inbox.Has(first[0].ID()))
	})
}

func TestInbox_Merge(t *testing.T) {
	userID := uuid.New()

	t.Run("positional insert", func(t *testing.T) {
		inbox := notification.NewInbox()
		a := builder.NewNotificationBuilder().WithUserID(userID).At(100).BuildDomain()
		b := builder.NewNotificationBuilder().WithUserID(userID).At(50).BuildDomain()
		c := builder.NewNotificationBuilder().WithUserID(userID).At(200).BuildDomain()
		d := builder.NewNotificationBuilder().WithUserID(userID).At(75).BuildDomain()

		for _, n := range []notification.Notification{a, b, c, d} {
			assert.True(t, inbox.Merge(n))
		}

		assert.Equal(t, []uuid.UUID{c.ID(), a.ID(), d.ID(), b.ID()}, builder.IDs(inbox.Items()))
	})

	t.Run("ties go after existing entries", func(t *testing.T) {
		inbox := notification.NewInbox()
		first := builder.NewNotificationBuilder().WithUserID(userID).At(10).BuildDomain()
		second := builder.NewNotificationBuilder().WithUserID(userID).At(10).BuildDomain()
		inbox.Merge(first)
		inbox.Merge(second)

		assert.Equal(t, []uuid.UUID{first.ID(), second.ID()}, builder.IDs(inbox.Items()))
	})

	t.Run("duplicate delivery is discarded", func(t *testing.T) {
		inbox := notification.NewInbox()
		n := builder.NewNotificationBuilder().WithUserID(userID).BuildDomain()

		require.True(t, inbox.Merge(n))
		for range 5 {
			assert.False(t, inbox.Merge(n.WithRead(true)))
		}

		assert.Equal(t, 1, inbox.Len())
		got, _ := inbox.Get(n.ID())
		assert.False(t, got.IsRead())
	})

	t.Run("order invariant holds for shuffled deliveries", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		var ns []notification.Notification
		for i := range 200 {
			ns = append(ns, builder.NewNotificationBuilder().WithUserID(userID).At(rng.Intn(50)+i%3).BuildDomain())
		}
		// replay a third of them to simulate at-least-once delivery
		deliveries := append(append([]notification.Notification{}, ns...), ns[:70]...)
		rng.Shuffle(len(deliveries), func(i, j int) { deliveries[i], deliveries[j] = deliveries[j], deliveries[i] })

		inbox := notification.NewInbox()
		for _, n := range deliveries {
			inbox.Merge(n)
		}

		items := inbox.Items()
		require.Len(t, items, len(ns))
		seen := map[uuid.UUID]bool{}
		for i, n := range items {
			assert.False(t, seen[n.ID()], "duplicate id")
			seen[n.ID()] = true
			if i > 0 {
				assert.False(t, items[i-1].Timestamp().Before(n.Timestamp()), "not descending at %d", i)
			}
		}
	})
}

func TestInbox_ReadState(t *testing.T) {
	userID := uuid.New()
	ns := builder.Notifications(userID, 300, 200, 100)

	t.Run("set read keeps position", func(t *testing.T) {
		inbox := notification.NewInbox()
		inbox.Replace(ns)
		before := builder.IDs(inbox.Items())

		assert.True(t, inbox.SetRead(ns[1].ID(), true))

		assert.Equal(t, before, builder.IDs(inbox.Items()))
		assert.Equal(t, 2, inbox.UnreadCount())
	})

	t.Run("set read is idempotent", func(t *testing.T) {
		inbox := notification.NewInbox()
		inbox.Replace(ns)
		inbox.SetRead(ns[0].ID(), true)
		once := inbox.Items()
		inbox.SetRead(ns[0].ID(), true)

		if diff := cmp.Diff(builder.IDs(once), builder.IDs(inbox.Items())); diff != "" {
			t.Errorf("items changed (-once +twice):\n%s", diff)
		}
		assert.Equal(t, 2, inbox.UnreadCount())
	})

	t.Run("unknown id", func(t *testing.T) {
		inbox := notification.NewInbox()
		inbox.Replace(ns)
		assert.False(t, inbox.SetRead(uuid.New(), true))
		assert.Equal(t, 3, inbox.UnreadCount())
	})

	t.Run("set all read twice", func(t *testing.T) {
		inbox := notification.NewInbox()
		inbox.Replace(ns)

		assert.Equal(t, 3, inbox.SetAllRead())
		assert.Equal(t, 0, inbox.SetAllRead())
		assert.Equal(t, 0, inbox.UnreadCount())
	})
}

func TestInbox_Removal(t *testing.T) {
	userID := uuid.New()
	ns := builder.Notifications(userID, 3, 2, 1)

	inbox := notification.NewInbox()
	inbox.Replace(ns)

	assert.True(t, inbox.Remove(ns[1].ID()))
	assert.False(t, inbox.Remove(ns[1].ID()))
	assert.Equal(t, []uuid.UUID{ns[0].ID(), ns[2].ID()}, builder.IDs(inbox.Items()))

	removed := inbox.Clear()
	assert.ElementsMatch(t, []uuid.UUID{ns[0].ID(), ns[2].ID()}, removed)
	assert.Equal(t, 0, inbox.Len())
	assert.Equal(t, 0, inbox.UnreadCount())

	// a cleared id may be merged again
	assert.True(t, inbox.Merge(ns[0]))
}

func TestInbox_ItemsIsACopy(t *testing.T) {
	inbox := notification.NewInbox()
	n := builder.NewNotificationBuilder().BuildDomain()
	inbox.Merge(n)

	items := inbox.Items()
	items[0] = items[0].WithRead(true)

	got, _ := inbox.Get(n.ID())
	assert.False(t, got.IsRead())
}
