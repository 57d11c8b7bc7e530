package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/embario/jukeclient/internal/client/models"
	"github.com/embario/jukeclient/internal/client/repositories/metadata"
	"github.com/embario/jukeclient/internal/dbx"
	"github.com/embario/jukeclient/internal/logging"
)

const (
	keyUsername = "username"
	keyToken    = "token"
)

// ErrInvalidSnapshot is returned by Save for a snapshot missing a field.
var ErrInvalidSnapshot = errors.New("snapshot requires a username and a token")

// Store is the SQLite-backed credential record of one app namespace.
type Store struct {
	db   *sql.DB
	repo metadata.Repository
	log  logging.Logger

	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

func NewStore(db *sql.DB, namespace string, log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{
		db:   db,
		repo: metadata.NewSQLiteRepository(db, namespace),
		log:  log.With("component", "credentials", "namespace", namespace),
		subs: make(map[*Subscription]struct{}),
	}
}

// Current returns the stored snapshot, or nil when signed out.
func (s *Store) Current(ctx context.Context) (*models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current(ctx)
}

func (s *Store) current(ctx context.Context) (*models.Snapshot, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	username, token := string(rows[keyUsername]), string(rows[keyToken])
	if username == "" || token == "" {
		return nil, nil
	}
	return &models.Snapshot{Username: username, Token: token}, nil
}

// Save replaces the record with snap and notifies subscribers. On failure
// nothing is written and nobody is notified.
func (s *Store) Save(ctx context.Context, snap models.Snapshot) error {
	if snap.Username == "" || snap.Token == "" {
		return ErrInvalidSnapshot
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo.With(tx)
		if err := repo.Set(ctx, keyUsername, []byte(snap.Username)); err != nil {
			return err
		}
		return repo.Set(ctx, keyToken, []byte(snap.Token))
	})
	if err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}

	s.log.Debug(ctx, "credentials saved", "username", snap.Username)
	s.publish(&snap)
	return nil
}

// Clear removes the record and notifies subscribers with nil.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo.With(tx)
		if err := repo.Delete(ctx, keyToken); err != nil {
			return err
		}
		return repo.Delete(ctx, keyUsername)
	})
	if err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}

	s.log.Debug(ctx, "credentials cleared")
	s.publish(nil)
	return nil
}

// Subscribe starts a stream that first yields the current value. The
// subscription ends when ctx is done or Close is called.
func (s *Store) Subscribe(ctx context.Context) (*Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.current(ctx)
	if err != nil {
		return nil, err
	}

	sub := newSubscription(s)
	sub.push(cur)
	s.subs[sub] = struct{}{}
	go sub.pump(ctx)

	return sub, nil
}

// publish must be called with s.mu held.
func (s *Store) publish(snap *models.Snapshot) {
	for sub := range s.subs {
		sub.push(snap.Clone())
	}
}

func (s *Store) remove(sub *Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, sub)
}

func (s *Store) subscriberCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}
