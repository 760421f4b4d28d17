package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSetRoundTrip(t *testing.T) {
	c := New(time.Minute)

	c.Set("team_recAbc123Def456Gh", "value")

	got, ok := c.Get("team_recAbc123Def456Gh")
	require.True(t, ok)
	assert.Equal(t, "value", got)
}

func TestGetMissingKey(t *testing.T) {
	c := New(time.Minute)

	_, ok := c.Get("nope")
	assert.False(t, ok)
}

func TestExpiredEntryIsDiscardedOnRead(t *testing.T) {
	c := New(time.Minute)

	c.SetWithTTL("contact_recAbc123Def456Gh", "value", -time.Second)

	_, ok := c.Get("contact_recAbc123Def456Gh")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestDelete(t *testing.T) {
	c := New(time.Minute)
	c.Set("k", 1)

	c.Delete("k")
	_, ok := c.Get("k")
	assert.False(t, ok)

	// Deleting a missing key is a no-op.
	c.Delete("k")
}

func TestInvalidatePrefix(t *testing.T) {
	c := New(time.Minute)
	c.Set("team_rec1", 1)
	c.Set("team_rec2", 2)
	c.Set("teams_cohort_recX", 3)
	c.Set("contact_rec1", 4)

	removed := c.InvalidatePrefix("team_")
	assert.Equal(t, 2, removed)
	assert.Equal(t, 2, c.Len())

	_, ok := c.Get("contact_rec1")
	assert.True(t, ok)
}

func TestInvalidateTypeClearsAllPatterns(t *testing.T) {
	c := New(time.Minute)
	c.Set("team_rec1", 1)
	c.Set("teams_cohort_recX", 2)
	c.Set("contact_rec1", 3)

	removed := c.InvalidateType(TypeTeams)
	assert.Equal(t, 2, removed)

	_, ok := c.Get("contact_rec1")
	assert.True(t, ok)
}

func TestInvalidateTypeWithSpecificIDs(t *testing.T) {
	c := New(time.Minute)
	c.Set("team_rec1", 1)
	c.Set("team_rec2", 2)

	removed := c.InvalidateType(TypeTeams, "rec1")
	assert.Equal(t, 1, removed)

	_, ok := c.Get("team_rec2")
	assert.True(t, ok)
}

func TestInvalidateTypeWithIDsClearsSharedKeys(t *testing.T) {
	c := New(time.Minute)
	c.Set("contact_rec1", 1)
	c.Set("contact_rec2", 2)
	c.Set("contact_auth_auth0|1", 3)
	c.Set("teams_cohort_recX", 4)

	// Auth lookups are keyed by identity subject, not record ID, so a
	// narrowed contacts invalidation must still clear them.
	removed := c.InvalidateType(TypeContacts, "rec1")
	assert.Equal(t, 2, removed)

	_, ok := c.Get("contact_auth_auth0|1")
	assert.False(t, ok)
	_, ok = c.Get("contact_rec2")
	assert.True(t, ok)

	// Same for cohort team lists, which are keyed by cohort ID.
	removed = c.InvalidateType(TypeTeams, "recY")
	assert.Equal(t, 1, removed)
	_, ok = c.Get("teams_cohort_recX")
	assert.False(t, ok)
}

func TestInvalidateUnknownTypeIsNoOp(t *testing.T) {
	c := New(time.Minute)
	c.Set("team_rec1", 1)

	assert.Equal(t, 0, c.InvalidateType(Type("bogus")))
	assert.Equal(t, 1, c.Len())
	assert.False(t, KnownType(Type("bogus")))
	assert.True(t, KnownType(TypePoints))
}

func TestSweepRemovesOnlyExpired(t *testing.T) {
	c := New(time.Minute)
	c.Set("fresh", 1)
	c.SetWithTTL("stale", 2, -time.Second)

	assert.Equal(t, 1, c.Sweep())
	assert.Equal(t, 1, c.Len())
}

func TestStats(t *testing.T) {
	c := New(time.Minute)
	c.Set("k", 1)

	c.Get("k")
	c.Get("missing")

	hits, misses := c.Stats()
	assert.EqualValues(t, 1, hits)
	assert.EqualValues(t, 1, misses)
}

func TestConcurrentAccess(t *testing.T) {
	c := New(time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("team_rec%d", n)
			c.Set(key, n)
			c.Get(key)
			if n%10 == 0 {
				c.InvalidateType(TypeTeams)
			}
		}(i)
	}
	wg.Wait()
}
