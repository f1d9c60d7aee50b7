package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	d := NewDB()
	require.NoError(t, d.Open(filepath.Join(t.TempDir(), "sub", "ddtabs.db")))
	t.Cleanup(d.Close)
	return d
}

func TestOrderRoundTrip(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()

	got, err := d.LoadOrder(ctx, "main")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, d.SaveOrder(ctx, "main", []string{"C", "A", "B"}))
	require.NoError(t, d.SaveOrder(ctx, "other", []string{"X"}))
	require.NoError(t, d.SaveOrder(ctx, "main", []string{"B", "A"}))

	got, err = d.LoadOrder(ctx, "main")
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A"}, got, "a save replaces the whole order")

	got, err = d.LoadOrder(ctx, "other")
	require.NoError(t, err)
	assert.Equal(t, []string{"X"}, got)
}

func TestSettings(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, d.SaveSetting(ctx, "selected", "2"))
	require.NoError(t, d.SaveSetting(ctx, "selected", "3"))
	require.NoError(t, d.SaveSetting(ctx, "theme", "dark"))

	s, err := d.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"selected": "3", "theme": "dark"}, s)
}

func TestWorker(t *testing.T) {
	d := openTestDB(t)
	go d.Start()
	t.Cleanup(func() { close(d.RequestChan) })

	recv := func() Response {
		select {
		case r := <-d.ResponseChan:
			return r
		case <-time.After(5 * time.Second):
			t.Fatal("no response from store worker")
			return Response{}
		}
	}

	d.RequestChan <- Request{Op: SaveOrder, Sheet: "main", Captions: []string{"A", "B"}}
	r := recv()
	require.NoError(t, r.Err)
	assert.Equal(t, SaveOrder, r.Op)
	assert.Equal(t, []string{"A", "B"}, r.Captions)

	d.RequestChan <- Request{Op: FetchOrder, Sheet: "main"}
	r = recv()
	assert.Equal(t, FetchOrder, r.Op)
	assert.Equal(t, "main", r.Sheet)
	assert.Equal(t, []string{"A", "B"}, r.Captions)

	d.RequestChan <- Request{Op: SaveSetting, Key: "k", Value: "v"}
	r = recv()
	assert.Equal(t, "v", r.Settings["k"])

	d.RequestChan <- Request{Op: FetchSettings}
	r = recv()
	assert.Equal(t, FetchSettings, r.Op)
	assert.Len(t, r.Settings, 1)
}
