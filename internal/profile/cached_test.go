package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	profiles map[string]*RawProfile
	calls    int
}

func (f *fakeSource) FetchProfile(_ context.Context, username string) (*RawProfile, error) {
	f.calls++
	raw, ok := f.profiles[username]
	if !ok {
		return nil, &FetchError{Username: username, Message: "no record", Cause: ErrProfileNotFound}
	}
	return raw, nil
}

type memoryCache struct {
	docs      map[string][]byte
	lookupErr error
}

func (m *memoryCache) GetFreshProfile(_ context.Context, username string, _ time.Duration) ([]byte, error) {
	if m.lookupErr != nil {
		return nil, m.lookupErr
	}
	return m.docs[username], nil
}

func (m *memoryCache) UpsertProfile(_ context.Context, username string, document []byte) error {
	m.docs[username] = document
	return nil
}

func TestCachedSource_StoresAndServesFromCache(t *testing.T) {
	source := &fakeSource{profiles: map[string]*RawProfile{"jane": {FirstName: "Jane"}}}
	cache := &memoryCache{docs: map[string][]byte{}}
	cached := NewCachedSource(source, cache, 0, nil)

	first, err := cached.FetchProfile(context.Background(), "jane")
	require.NoError(t, err)
	assert.Equal(t, "Jane", first.FirstName)
	assert.Contains(t, string(cache.docs["jane"]), `"firstName":"Jane"`)

	second, err := cached.FetchProfile(context.Background(), "jane")
	require.NoError(t, err)
	assert.Equal(t, "Jane", second.FirstName)
	assert.Equal(t, 1, source.calls, "second lookup is served from cache")
}

func TestCachedSource_LookupFailureFallsBackToSource(t *testing.T) {
	source := &fakeSource{profiles: map[string]*RawProfile{"jane": {FirstName: "Jane"}}}
	cache := &memoryCache{docs: map[string][]byte{}, lookupErr: errors.New("connection refused")}
	cached := NewCachedSource(source, cache, time.Hour, nil)

	raw, err := cached.FetchProfile(context.Background(), "jane")
	require.NoError(t, err)
	assert.Equal(t, "Jane", raw.FirstName)
}

func TestCachedSource_PropagatesSourceErrors(t *testing.T) {
	cached := NewCachedSource(&fakeSource{}, &memoryCache{docs: map[string][]byte{}}, time.Hour, nil)

	_, err := cached.FetchProfile(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}
