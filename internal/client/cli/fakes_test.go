package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/embario/jukeclient/internal/client/client"
	"github.com/embario/jukeclient/internal/client/credentials"
	"github.com/embario/jukeclient/internal/client/models"
	"github.com/embario/jukeclient/internal/logging"
)

type fakeAuth struct {
	store *credentials.Store

	regReq  models.RegisterRequest
	regMsg  string
	regErr  error
	verReq  models.VerifyRegistrationRequest
	verResp *models.Snapshot
	verErr  error
	resendE string
	resendM string
	loginU  string
	loginP  string
	loginE  error
	logouts int
	session *models.Snapshot
	cached  *models.Snapshot
}

func (f *fakeAuth) Token(context.Context) (string, error) {
	if f.cached == nil {
		return "", client.ErrNotAuthenticated
	}
	return f.cached.Token, nil
}

func (f *fakeAuth) Login(_ context.Context, username, password string) error {
	f.loginU, f.loginP = username, password
	if f.loginE != nil {
		return f.loginE
	}
	f.cached = &models.Snapshot{Username: username, Token: "tok"}
	return nil
}

func (f *fakeAuth) Register(_ context.Context, req models.RegisterRequest) (string, error) {
	f.regReq = req
	return f.regMsg, f.regErr
}

func (f *fakeAuth) VerifyRegistration(_ context.Context, req models.VerifyRegistrationRequest) (bool, error) {
	f.verReq = req
	if f.verErr != nil {
		return false, f.verErr
	}
	if f.verResp == nil {
		return false, nil
	}
	f.cached = f.verResp.Clone()
	return true, nil
}

func (f *fakeAuth) ResendVerification(_ context.Context, email string) (string, error) {
	f.resendE = email
	return f.resendM, nil
}

func (f *fakeAuth) Logout(context.Context) {
	f.logouts++
	f.cached = nil
}

func (f *fakeAuth) CurrentSession(context.Context) (*models.Snapshot, error) {
	return f.session, nil
}

func (f *fakeAuth) Subscribe(ctx context.Context) (*credentials.Subscription, error) {
	if f.store == nil {
		return nil, errors.New("no store")
	}
	return f.store.Subscribe(ctx)
}

func (f *fakeAuth) Cached() *models.Snapshot { return f.cached }

type fakeCatalog struct {
	mu       sync.Mutex
	queries  []string
	res      models.CatalogResults
	err      error
	genres   []models.FeaturedGenre
	recorded []models.SearchHistory
	detail   []string
	genre    models.Genre
	artist   models.Artist
	album    models.Album
	// block, when set, is waited on by the first SearchAll call only.
	block chan struct{}
}

func (f *fakeCatalog) SearchArtists(context.Context, string) ([]models.Artist, error) {
	return f.res.Artists, f.err
}
func (f *fakeCatalog) SearchAlbums(context.Context, string) ([]models.Album, error) {
	return f.res.Albums, f.err
}
func (f *fakeCatalog) SearchTracks(context.Context, string) ([]models.Track, error) {
	return f.res.Tracks, f.err
}
func (f *fakeCatalog) FeaturedGenres(context.Context) ([]models.FeaturedGenre, error) {
	return f.genres, f.err
}

func (f *fakeCatalog) lookup(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.detail = append(f.detail, key)
}

func (f *fakeCatalog) GenreDetail(_ context.Context, id int) (models.Genre, error) {
	f.lookup(fmt.Sprintf("genre:%d", id))
	return f.genre, f.err
}
func (f *fakeCatalog) ArtistDetail(_ context.Context, id int) (models.Artist, error) {
	f.lookup(fmt.Sprintf("artist:%d", id))
	return f.artist, f.err
}
func (f *fakeCatalog) AlbumDetail(_ context.Context, id int) (models.Album, error) {
	f.lookup(fmt.Sprintf("album:%d", id))
	return f.album, f.err
}
func (f *fakeCatalog) ArtistBySpotifyID(_ context.Context, spotifyID string) (models.Artist, error) {
	f.lookup("artist:spotify:" + spotifyID)
	return f.artist, f.err
}
func (f *fakeCatalog) AlbumBySpotifyID(_ context.Context, spotifyID string) (models.Album, error) {
	f.lookup("album:spotify:" + spotifyID)
	return f.album, f.err
}

func (f *fakeCatalog) SearchAll(_ context.Context, q string) (models.CatalogResults, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	block := f.block
	f.block = nil
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	return f.res, f.err
}

func (f *fakeCatalog) RecordSearch(_ context.Context, h models.SearchHistory) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recorded = append(f.recorded, h)
}

func (f *fakeCatalog) Queries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

type fakeProfiles struct {
	me      models.MusicProfile
	get     map[string]models.MusicProfile
	found   []models.ProfileSummary
	updates []models.ProfileUpdate
	err     error
}

func (f *fakeProfiles) Me(context.Context) (models.MusicProfile, error) { return f.me, f.err }

func (f *fakeProfiles) Get(_ context.Context, username string) (models.MusicProfile, error) {
	if f.err != nil {
		return models.MusicProfile{}, f.err
	}
	p, ok := f.get[username]
	if !ok {
		return models.MusicProfile{}, &client.APIError{Status: 404, Message: "Not found."}
	}
	return p, nil
}

func (f *fakeProfiles) Search(context.Context, string) ([]models.ProfileSummary, error) {
	return f.found, f.err
}

func (f *fakeProfiles) Update(_ context.Context, u models.ProfileUpdate) error {
	f.updates = append(f.updates, u)
	return f.err
}

func (f *fakeProfiles) OnboardingCompleted(context.Context) (bool, error) {
	return f.me.OnboardingCompletedAt != "", f.err
}

// syncBuffer is a bytes.Buffer safe for the REPL and a background search.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type testApp struct {
	*App
	auth     *fakeAuth
	catalog  *fakeCatalog
	profiles *fakeProfiles
	out      *syncBuffer
}

func newTestApp(t *testing.T, input string) *testApp {
	t.Helper()
	ta := &testApp{
		auth:     &fakeAuth{},
		catalog:  &fakeCatalog{},
		profiles: &fakeProfiles{},
		out:      &syncBuffer{},
	}
	ta.App = NewApp(Deps{
		Auth:           ta.auth,
		Catalog:        ta.catalog,
		Profiles:       ta.profiles,
		Logger:         logging.Nop(),
		In:             strings.NewReader(input),
		Out:            ta.out,
		SearchDebounce: 20 * time.Millisecond,
	})
	t.Cleanup(ta.debounce.Cancel)
	return ta
}

func newTestCredentials(t *testing.T) *credentials.Store {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "juke.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return credentials.NewStore(db, "juke", logging.Nop())
}

// stubAnswers scripts getSimpleText and getPassword with answers in order.
func stubAnswers(t *testing.T, answers ...string) {
	t.Helper()
	origST, origPW := getSimpleText, getPassword
	t.Cleanup(func() {
		getSimpleText, getPassword = origST, origPW
	})

	var mu sync.Mutex
	nextAnswer := func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		mu.Lock()
		defer mu.Unlock()
		if len(answers) == 0 {
			return "", io.EOF
		}
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}
	getSimpleText = nextAnswer
	getPassword = nextAnswer
}
