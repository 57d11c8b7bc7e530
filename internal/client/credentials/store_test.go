package credentials

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embario/jukeclient/internal/client/client"
	"github.com/embario/jukeclient/internal/client/models"
	"github.com/embario/jukeclient/internal/logging"
)

const waitTimeout = 2 * time.Second

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "juke.db")
	db, err := client.InitDatabase(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(db, "juke", logging.Nop()), dsn
}

func next(t *testing.T, sub *Subscription) *models.Snapshot {
	t.Helper()
	select {
	case v, ok := <-sub.Updates():
		require.True(t, ok, "subscription closed unexpectedly")
		return v
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for update")
		return nil
	}
}

func expectQuiet(t *testing.T, sub *Subscription) {
	t.Helper()
	select {
	case v, ok := <-sub.Updates():
		if ok {
			t.Fatalf("unexpected update: %+v", v)
		}
	case <-time.After(100 * time.Millisecond):
	}
}

func TestStore_SubscribeEmitsCurrentThenChanges(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	sub, err := store.Subscribe(ctx)
	require.NoError(t, err)
	defer sub.Close()

	assert.Nil(t, next(t, sub))

	require.NoError(t, store.Save(ctx, models.Snapshot{Username: "alice", Token: "abc123"}))
	assert.Equal(t, &models.Snapshot{Username: "alice", Token: "abc123"}, next(t, sub))

	require.NoError(t, store.Clear(ctx))
	assert.Nil(t, next(t, sub))

	cur, err := store.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur)
}

func TestStore_SavingSameSnapshotTwiceNotifiesTwice(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	sub, err := store.Subscribe(ctx)
	require.NoError(t, err)
	defer sub.Close()
	require.Nil(t, next(t, sub))

	snap := models.Snapshot{Username: "alice", Token: "abc123"}
	require.NoError(t, store.Save(ctx, snap))
	require.NoError(t, store.Save(ctx, snap))

	assert.Equal(t, &snap, next(t, sub))
	assert.Equal(t, &snap, next(t, sub))
}

func TestStore_LateSubscriberStartsFromCurrent(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, models.Snapshot{Username: "bob", Token: "t1"}))

	sub, err := store.Subscribe(ctx)
	require.NoError(t, err)
	defer sub.Close()

	assert.Equal(t, &models.Snapshot{Username: "bob", Token: "t1"}, next(t, sub))
	expectQuiet(t, sub)
}

func TestStore_BroadcastsToEverySubscriber(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	subs := make([]*Subscription, 3)
	for i := range subs {
		sub, err := store.Subscribe(ctx)
		require.NoError(t, err)
		defer sub.Close()
		require.Nil(t, next(t, sub))
		subs[i] = sub
	}

	require.NoError(t, store.Save(ctx, models.Snapshot{Username: "carol", Token: "t"}))
	require.NoError(t, store.Clear(ctx))

	for _, sub := range subs {
		assert.Equal(t, "carol", next(t, sub).Username)
		assert.Nil(t, next(t, sub))
	}
}

func TestStore_SlowSubscriberDoesNotBlockWriters(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	sub, err := store.Subscribe(ctx)
	require.NoError(t, err)
	defer sub.Close()

	for i := 0; i < 20; i++ {
		require.NoError(t, store.Save(ctx, models.Snapshot{Username: "dave", Token: fmt.Sprintf("t%d", i)}))
	}

	assert.Nil(t, next(t, sub))
	for i := 0; i < 20; i++ {
		assert.Equal(t, fmt.Sprintf("t%d", i), next(t, sub).Token)
	}
}

func TestStore_SaveRejectsIncompleteSnapshot(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.ErrorIs(t, store.Save(ctx, models.Snapshot{Username: "alice"}), ErrInvalidSnapshot)
	require.ErrorIs(t, store.Save(ctx, models.Snapshot{Token: "t"}), ErrInvalidSnapshot)

	cur, err := store.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur)
}

func TestStore_PersistsAcrossInstances(t *testing.T) {
	store, dsn := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, models.Snapshot{Username: "erin", Token: "persisted"}))

	db, err := client.InitDatabase(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	reopened := NewStore(db, "juke", nil)
	cur, err := reopened.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, &models.Snapshot{Username: "erin", Token: "persisted"}, cur)

	other := NewStore(db, "shotclock", nil)
	cur, err = other.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur)
}

func TestStore_ConcurrentSavesLastWriterWins(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	sub, err := store.Subscribe(ctx)
	require.NoError(t, err)
	defer sub.Close()
	require.Nil(t, next(t, sub))

	const writers = 8
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, store.Save(ctx, models.Snapshot{Username: "u", Token: fmt.Sprintf("t%d", i)}))
		}(i)
	}
	wg.Wait()

	var last *models.Snapshot
	for i := 0; i < writers; i++ {
		last = next(t, sub)
	}

	cur, err := store.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, last, cur, "final stored value must match the last notification")
}

func TestSubscription_EndsOnContextCancel(t *testing.T) {
	store, _ := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	sub, err := store.Subscribe(ctx)
	require.NoError(t, err)
	require.Nil(t, next(t, sub))

	cancel()

	select {
	case _, ok := <-sub.Updates():
		assert.False(t, ok)
	case <-time.After(waitTimeout):
		t.Fatal("subscription did not end")
	}
	assert.Eventually(t, func() bool { return store.subscriberCount() == 0 }, waitTimeout, 10*time.Millisecond)

	require.NoError(t, store.Save(context.Background(), models.Snapshot{Username: "a", Token: "b"}))
}

func TestSubscription_CloseIsIdempotent(t *testing.T) {
	store, _ := newTestStore(t)

	sub, err := store.Subscribe(context.Background())
	require.NoError(t, err)

	sub.Close()
	sub.Close()

	assert.Eventually(t, func() bool {
		select {
		case _, ok := <-sub.Updates():
			return !ok
		default:
			return false
		}
	}, waitTimeout, 10*time.Millisecond)
	assert.Equal(t, 0, store.subscriberCount())
}

func TestStore_FailedWriteRollsBackAndPublishesNothing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewStore(db, "juke", nil)
	ctx := context.Background()

	mock.ExpectQuery("SELECT key, value FROM metadata").
		WillReturnRows(sqlmock.NewRows([]string{"key", "value"}).
			AddRow("username", []byte("bob")).
			AddRow("token", []byte("t0")))

	sub, err := store.Subscribe(ctx)
	require.NoError(t, err)
	defer sub.Close()
	require.Equal(t, &models.Snapshot{Username: "bob", Token: "t0"}, next(t, sub))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO metadata").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO metadata").WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	err = store.Save(ctx, models.Snapshot{Username: "alice", Token: "t1"})
	require.ErrorContains(t, err, "save credentials")
	require.ErrorContains(t, err, "disk I/O error")

	expectQuiet(t, sub)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_FailedClearPublishesNothing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewStore(db, "juke", nil)
	ctx := context.Background()

	mock.ExpectQuery("SELECT key, value FROM metadata").
		WillReturnRows(sqlmock.NewRows([]string{"key", "value"}))
	sub, err := store.Subscribe(ctx)
	require.NoError(t, err)
	defer sub.Close()
	require.Nil(t, next(t, sub))

	mock.ExpectBegin().WillReturnError(errors.New("database is locked"))

	err = store.Clear(ctx)
	require.ErrorContains(t, err, "database is locked")

	expectQuiet(t, sub)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_CurrentReportsReadErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT key, value FROM metadata").WillReturnError(errors.New("no such table: metadata"))

	_, err = NewStore(db, "juke", nil).Current(context.Background())
	require.ErrorContains(t, err, "read credentials")
	require.NoError(t, mock.ExpectationsWereMet())
}
