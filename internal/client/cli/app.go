package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/embario/jukeclient/internal/client/models"
	"github.com/embario/jukeclient/internal/client/search"
	"github.com/embario/jukeclient/internal/client/services"
	"github.com/embario/jukeclient/internal/logging"
)

// Deps are the collaborators an App runs on. In and Out default to the
// process stdin and stdout.
type Deps struct {
	Auth           services.AuthService
	Catalog        services.CatalogService
	Profiles       services.ProfileService
	Logger         logging.Logger
	In             io.Reader
	Out            io.Writer
	SearchDebounce time.Duration
}

type App struct {
	auth     services.AuthService
	catalog  services.CatalogService
	profiles services.ProfileService
	log      logging.Logger
	reader   *bufio.Reader
	out      *lockedWriter
	debounce *search.Debouncer
	seq      search.Sequencer

	mu       sync.Mutex
	userName string
}

func NewApp(d Deps) *App {
	in, out := d.In, d.Out
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	log := d.Logger
	if log == nil {
		log = logging.Nop()
	}
	return &App{
		auth:     d.Auth,
		catalog:  d.Catalog,
		profiles: d.Profiles,
		log:      log,
		reader:   bufio.NewReader(in),
		out:      &lockedWriter{w: out},
		debounce: search.NewDebouncer(d.SearchDebounce),
	}
}

// Run shows the REPL until the user exits, stdin closes or ctx is done.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.debounce.Cancel()

	sub, err := a.auth.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("subscribe to session: %w", err)
	}
	defer sub.Close()

	// The first snapshot is the persisted session, so the prompt is right
	// before the first command.
	select {
	case snap, ok := <-sub.Updates():
		if ok {
			a.applySnapshot(snap)
		}
	case <-ctx.Done():
		return nil
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.watchSession(ctx, sub.Updates())
	}()

	a.printf("Welcome to Juke CLI (type 'help' for commands)\n")
	runREPL(ctx, a, a.getStatus, a.reader, a.out)

	cancel()
	sub.Close()
	wg.Wait()
	return nil
}

// watchSession keeps the prompt in step with the stored session, including
// changes made by other writers on the same store. Writes from another
// process sharing the database are not observed.
func (a *App) watchSession(ctx context.Context, updates <-chan *models.Snapshot) {
	for {
		select {
		case snap, ok := <-updates:
			if !ok {
				return
			}
			a.applySnapshot(snap)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) applySnapshot(snap *models.Snapshot) {
	name := ""
	if snap != nil {
		name = snap.Username
	}
	a.setUser(name)
}

func (a *App) setUser(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.userName != name {
		a.userName = name
		a.log.Debug(context.Background(), "session changed", "username", name)
	}
}

func (a *App) currentUser() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.userName
}

func (a *App) isLoggedIn() bool {
	return a.currentUser() != ""
}

func (a *App) getStatus() string {
	if u := a.currentUser(); u != "" {
		return fmt.Sprintf("(%s)", u)
	}
	return ""
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// lockedWriter serializes writes from the REPL and background searches.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
