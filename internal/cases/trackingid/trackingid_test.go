package trackingid

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"govportal/pkg/platform/sentinel"
)

var idPattern = regexp.MustCompile(`^[A-Z]+[0-9]+$`)

func TestFormat(t *testing.T) {
	ts := time.UnixMilli(1714550400123)
	assert.Equal(t, "APP1714550400123", Format(PrefixApplication, ts))
	assert.Equal(t, "CMP1714550400123", Format(PrefixComplaint, ts))
	assert.Regexp(t, idPattern, Format(PrefixHealth, time.Now()))
}

func TestHealthPrefix(t *testing.T) {
	tests := map[string]string{
		"birth-certificate":       "BIRTH",
		"death-certificate":       "DEATH",
		"health-card":             "HEALTH",
		"vaccination-certificate": "VAC",
		"Birth-Certificate":       "BIRTH",
		"blood-test":              "HLTH",
		"":                        "HLTH",
	}
	for serviceType, want := range tests {
		t.Run(serviceType, func(t *testing.T) {
			assert.Equal(t, want, HealthPrefix(serviceType))
		})
	}
}

func TestGeneratorWithoutReserver(t *testing.T) {
	now := time.UnixMilli(1714550400000)
	id, err := NewGenerator().Next(context.Background(), PrefixApplication, now)
	require.NoError(t, err)
	assert.Equal(t, "APP1714550400000", id)
}

func TestGeneratorSkipsTakenIDs(t *testing.T) {
	ctx := context.Background()
	now := time.UnixMilli(1714550400000)
	g := NewGenerator(WithReserver(NewMemoryReserver()))

	first, err := g.Next(ctx, PrefixComplaint, now)
	require.NoError(t, err)
	second, err := g.Next(ctx, PrefixComplaint, now)
	require.NoError(t, err)
	other, err := g.Next(ctx, PrefixApplication, now)
	require.NoError(t, err)

	assert.Equal(t, "CMP1714550400000", first)
	assert.Equal(t, "CMP1714550400001", second)
	assert.Equal(t, "APP1714550400000", other)
}

func TestGeneratorConcurrentUniqueness(t *testing.T) {
	ctx := context.Background()
	now := time.UnixMilli(1714550400000)
	g := NewGenerator(WithReserver(NewMemoryReserver()))

	const n = 100
	ids := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := g.Next(ctx, PrefixApplication, now)
			assert.NoError(t, err)
			ids[i] = id
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, n)
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

type failingReserver struct{ err error }

func (f failingReserver) Reserve(context.Context, string) (bool, error) { return false, f.err }

type fullReserver struct{}

func (fullReserver) Reserve(context.Context, string) (bool, error) { return false, nil }

func TestGeneratorErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("reserver failure is returned", func(t *testing.T) {
		boom := errors.New("connection refused")
		_, err := NewGenerator(WithReserver(failingReserver{err: boom})).Next(ctx, PrefixApplication, time.Now())
		assert.ErrorIs(t, err, boom)
	})

	t.Run("exhausted attempts is a conflict", func(t *testing.T) {
		_, err := NewGenerator(WithReserver(fullReserver{}), WithMaxAttempts(3)).Next(ctx, PrefixApplication, time.Now())
		assert.ErrorIs(t, err, sentinel.ErrConflict)
	})
}

func TestMemoryReserverExpiresClaims(t *testing.T) {
	ctx := context.Background()
	clock := time.UnixMilli(1714550400000)
	r := NewMemoryReserver(WithTTL(time.Second), withClock(func() time.Time { return clock }))

	for i := range 50 {
		ok, err := r.Reserve(ctx, Format(PrefixApplication, clock.Add(time.Duration(i)*time.Millisecond)))
		require.NoError(t, err)
		require.True(t, ok)
	}
	ok, err := r.Reserve(ctx, "APP1714550400000")
	require.NoError(t, err)
	assert.False(t, ok, "a live claim is refused")
	assert.Equal(t, 50, r.Len())

	clock = clock.Add(2 * time.Second)
	ok, err = r.Reserve(ctx, "CMP1714550402000")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, r.Len(), "expired claims are swept")

	ok, err = r.Reserve(ctx, "APP1714550400000")
	require.NoError(t, err)
	assert.True(t, ok, "an expired claim can be taken again")
}
