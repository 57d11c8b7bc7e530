// Package appmeta keeps per-identity app data next to the credential
// record, such as when the signed-in user finished onboarding. Values are
// scoped to an app and a username and are dropped with Forget whenever that
// identity logs in or out.
package appmeta

import (
	"context"
	"errors"

	"github.com/embario/jukeclient/internal/client/repositories/metadata"
	"github.com/embario/jukeclient/internal/dbx"
)

// KeyOnboardingCompletedAt holds the profile's onboarding timestamp.
const KeyOnboardingCompletedAt = "onboarding_completed_at"

var ErrNoIdentity = errors.New("app metadata requires a username")

type Store struct {
	db  dbx.DBTX
	app string
}

func NewStore(db dbx.DBTX, app string) *Store {
	return &Store{db: db, app: app}
}

func (s *Store) repo(username string) (metadata.Repository, error) {
	if username == "" {
		return nil, ErrNoIdentity
	}
	return metadata.NewSQLiteRepository(s.db, s.app+"/identity/"+username), nil
}

// Get returns the value and whether it was set.
func (s *Store) Get(ctx context.Context, username, key string) (string, bool, error) {
	r, err := s.repo(username)
	if err != nil {
		return "", false, err
	}
	v, err := r.Get(ctx, key)
	if err != nil {
		return "", false, err
	}
	if v == nil {
		return "", false, nil
	}
	return string(v), true, nil
}

func (s *Store) Set(ctx context.Context, username, key, value string) error {
	r, err := s.repo(username)
	if err != nil {
		return err
	}
	return r.Set(ctx, key, []byte(value))
}

func (s *Store) Delete(ctx context.Context, username, key string) error {
	r, err := s.repo(username)
	if err != nil {
		return err
	}
	return r.Delete(ctx, key)
}

// Forget drops everything stored for username.
func (s *Store) Forget(ctx context.Context, username string) error {
	r, err := s.repo(username)
	if err != nil {
		return err
	}
	return r.Clear(ctx)
}
