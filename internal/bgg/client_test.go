package bgg

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/EmilStenstrom/gamecache/internal/contract"
	"github.com/EmilStenstrom/gamecache/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedWeb returns its responses in order, one per call.
type scriptedWeb struct {
	responses []*contract.WebResponse
	err       error
	calls     int
}

func (s *scriptedWeb) Do(context.Context, string, string, map[string]string, time.Duration) (*contract.WebResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.calls >= len(s.responses) {
		return s.responses[len(s.responses)-1], nil
	}
	resp := s.responses[s.calls]
	s.calls++
	return resp, nil
}

// mapStore is an in-memory CacheStore.
type mapStore struct {
	values map[string][]byte
	sets   int
}

func newMapStore() *mapStore {
	return &mapStore{values: make(map[string][]byte)}
}

func (m *mapStore) Get(key string) ([]byte, int, int64, error) {
	v, ok := m.values[key]
	if !ok {
		return nil, 0, 0, sql.ErrNoRows
	}
	return v, cacheSchemaVersion, 0, nil
}

func (m *mapStore) Set(key string, value []byte, _ int, _ int64) error {
	m.values[key] = value
	m.sets++
	return nil
}

func (m *mapStore) Clear() error { m.values = map[string][]byte{}; return nil }

func (m *mapStore) Close() error { return nil }

func (m *mapStore) GetStatus() (schema.CacheStatus, error) { return schema.CacheStatus{}, nil }

func newTestClient(web contract.WebClient, store contract.CacheStore) *Client {
	c := NewClient(web, store, "")
	c.sleep = func(time.Duration) {}
	return c
}

func TestFetchCollectionRetriesOn202(t *testing.T) {
	web := &scriptedWeb{responses: []*contract.WebResponse{
		{StatusCode: 202, Body: []byte("queued")},
		{StatusCode: 202, Body: []byte("queued")},
		{StatusCode: 200, Body: []byte(`<items totalitems="1"><item objectid="822" subtype="boardgame"><name>Carcassonne</name></item></items>`)},
	}}

	payload, raw, err := newTestClient(web, nil).FetchCollection(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, 3, web.calls)
	require.NotNil(t, payload)
	assert.Len(t, payload.Items, 1)
	assert.Contains(t, string(raw), "Carcassonne")
}

func TestFetchCollectionRetryCap(t *testing.T) {
	web := &scriptedWeb{responses: []*contract.WebResponse{{StatusCode: 202, Body: []byte("queued")}}}

	_, _, err := newTestClient(web, nil).FetchCollection(context.Background(), "alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "still preparing")
}

func TestFetchCollectionHTTPError(t *testing.T) {
	web := &scriptedWeb{responses: []*contract.WebResponse{{StatusCode: 500, Body: []byte("boom")}}}

	_, _, err := newTestClient(web, nil).FetchCollection(context.Background(), "alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestFetchCollectionTransportError(t *testing.T) {
	web := &scriptedWeb{err: errors.New("connection refused")}

	_, _, err := newTestClient(web, nil).FetchCollection(context.Background(), "alice")
	assert.Error(t, err)
}

func TestFetchCollectionDecodeFallback(t *testing.T) {
	web := &scriptedWeb{responses: []*contract.WebResponse{{StatusCode: 200, Body: []byte("<totally><broken")}}}

	payload, raw, err := newTestClient(web, nil).FetchCollection(context.Background(), "alice")
	require.NoError(t, err)
	assert.Nil(t, payload)
	assert.NotEmpty(t, raw)
}

func TestFetchUserUnknownUser(t *testing.T) {
	// BGG answers unknown users with 200 and an errors document.
	web := &scriptedWeb{responses: []*contract.WebResponse{
		{StatusCode: 200, Body: []byte(`<errors><error><message>Invalid username specified</message></error></errors>`)},
	}}

	payload, raw, err := newTestClient(web, nil).FetchUser(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, payload)
	assert.Contains(t, string(raw), "Invalid username")
}

func TestFetchUserKnownUser(t *testing.T) {
	web := &scriptedWeb{responses: []*contract.WebResponse{
		{StatusCode: 200, Body: []byte(`<user id="42" name="alice"></user>`)},
	}}

	payload, _, err := newTestClient(web, nil).FetchUser(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, payload)
	assert.Equal(t, "42", payload.ID)
}

func TestFetchCollectionUsesCache(t *testing.T) {
	store := newMapStore()
	body := []byte(`<items totalitems="1"><item objectid="13" subtype="boardgame"><name>Catan</name></item></items>`)
	web := &scriptedWeb{responses: []*contract.WebResponse{{StatusCode: 200, Body: body}}}
	client := newTestClient(web, store)

	// First call hits the network and populates the cache.
	payload, _, err := client.FetchCollection(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, payload)
	assert.Equal(t, 1, web.calls)
	assert.Equal(t, 1, store.sets)

	// Second call is served from the cache.
	payload, _, err = client.FetchCollection(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, payload)
	assert.Equal(t, 1, web.calls)
}
