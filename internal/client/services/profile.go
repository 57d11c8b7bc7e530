package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/embario/jukeclient/internal/client/appmeta"
	"github.com/embario/jukeclient/internal/client/client"
	"github.com/embario/jukeclient/internal/client/models"
	"github.com/embario/jukeclient/internal/logging"
)

const (
	pathProfiles      = "/api/v1/music-profiles/"
	pathMyProfile     = "/api/v1/music-profiles/me/"
	pathProfileSearch = "/api/v1/music-profiles/search/"
)

// ErrEmptyUpdate is returned by Update when no field is set.
var ErrEmptyUpdate = errors.New("profile update has no fields")

type ProfileService interface {
	Me(ctx context.Context) (models.MusicProfile, error)
	Get(ctx context.Context, username string) (models.MusicProfile, error)
	// Search returns no results, without a request, for a blank query.
	Search(ctx context.Context, query string) ([]models.ProfileSummary, error)
	Update(ctx context.Context, u models.ProfileUpdate) error
	// OnboardingCompleted reports whether the signed-in identity finished
	// onboarding, as recorded by the last Me call.
	OnboardingCompleted(ctx context.Context) (bool, error)
}

// AppMetadata is the per-identity store Me records onboarding state in.
// *appmeta.Store implements it.
type AppMetadata interface {
	Get(ctx context.Context, username, key string) (string, bool, error)
	Set(ctx context.Context, username, key, value string) error
	Delete(ctx context.Context, username, key string) error
}

type profileService struct {
	exec     client.Executor
	sessions SessionReader
	meta     AppMetadata
	log      logging.Logger
}

// NewProfileService builds a ProfileService. meta may be nil for apps that
// keep no per-identity data.
func NewProfileService(exec client.Executor, sessions SessionReader, meta AppMetadata, log logging.Logger) ProfileService {
	if log == nil {
		log = logging.Nop()
	}
	return &profileService{exec: exec, sessions: sessions, meta: meta, log: log.With("component", "profile")}
}

func (p *profileService) session(ctx context.Context) (*models.Snapshot, error) {
	snap, err := p.sessions.Current(ctx)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, client.ErrNotAuthenticated
	}
	return snap, nil
}

func (p *profileService) fetch(ctx context.Context, token, path string) (models.MusicProfile, error) {
	var dto models.MusicProfileDTO
	err := p.exec.Execute(ctx, client.Request{Method: http.MethodGet, Path: path, Token: token}, &dto)
	if err != nil {
		return models.MusicProfile{}, err
	}
	return dto.ToDomain(), nil
}

func (p *profileService) Me(ctx context.Context) (models.MusicProfile, error) {
	snap, err := p.session(ctx)
	if err != nil {
		return models.MusicProfile{}, fmt.Errorf("my profile: %w", err)
	}
	profile, err := p.fetch(ctx, snap.Token, pathMyProfile)
	if err != nil {
		return models.MusicProfile{}, fmt.Errorf("my profile: %w", err)
	}
	p.recordOnboarding(ctx, snap.Username, profile.OnboardingCompletedAt)
	return profile, nil
}

func (p *profileService) recordOnboarding(ctx context.Context, username, completedAt string) {
	if p.meta == nil {
		return
	}
	var err error
	if completedAt == "" {
		err = p.meta.Delete(ctx, username, appmeta.KeyOnboardingCompletedAt)
	} else {
		err = p.meta.Set(ctx, username, appmeta.KeyOnboardingCompletedAt, completedAt)
	}
	if err != nil {
		p.log.Warn(ctx, "recording onboarding state failed", "username", username, "error", err)
	}
}

func (p *profileService) OnboardingCompleted(ctx context.Context) (bool, error) {
	snap, err := p.session(ctx)
	if err != nil {
		return false, err
	}
	if p.meta == nil {
		return false, nil
	}
	_, ok, err := p.meta.Get(ctx, snap.Username, appmeta.KeyOnboardingCompletedAt)
	return ok, err
}

func (p *profileService) Get(ctx context.Context, username string) (models.MusicProfile, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return models.MusicProfile{}, &client.ValidationError{Message: MsgUsernameRequired}
	}
	snap, err := p.session(ctx)
	if err != nil {
		return models.MusicProfile{}, fmt.Errorf("profile %s: %w", username, err)
	}
	profile, err := p.fetch(ctx, snap.Token, pathProfiles+url.PathEscape(username)+"/")
	if err != nil {
		return models.MusicProfile{}, fmt.Errorf("profile %s: %w", username, err)
	}
	return profile, nil
}

func (p *profileService) Search(ctx context.Context, query string) ([]models.ProfileSummary, error) {
	if strings.TrimSpace(query) == "" {
		return []models.ProfileSummary{}, nil
	}
	snap, err := p.session(ctx)
	if err != nil {
		return nil, fmt.Errorf("search profiles: %w", err)
	}

	var page models.Page[models.ProfileSearchEntryDTO]
	err = p.exec.Execute(ctx, client.Request{
		Method: http.MethodGet,
		Path:   pathProfileSearch,
		Query:  map[string]string{"q": query},
		Token:  snap.Token,
	}, &page)
	if err != nil {
		return nil, fmt.Errorf("search profiles: %w", err)
	}
	return models.MapSlice(page.Results, models.ProfileSearchEntryDTO.ToSummary), nil
}

func (p *profileService) Update(ctx context.Context, u models.ProfileUpdate) error {
	if u.IsEmpty() {
		return ErrEmptyUpdate
	}
	snap, err := p.session(ctx)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	err = p.exec.Execute(ctx, client.Request{
		Method: http.MethodPatch,
		Path:   pathMyProfile,
		Body:   u,
		Token:  snap.Token,
	}, nil)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}
