package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/newsexplorer/internal/client/client"
	"github.com/dmitrijs2005/newsexplorer/internal/client/config"
	"github.com/dmitrijs2005/newsexplorer/internal/client/form"
	"github.com/dmitrijs2005/newsexplorer/internal/client/modal"
	"github.com/dmitrijs2005/newsexplorer/internal/client/newsapi"
	"github.com/dmitrijs2005/newsexplorer/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/newsexplorer/internal/client/search"
	"github.com/dmitrijs2005/newsexplorer/internal/client/services"
	"github.com/dmitrijs2005/newsexplorer/internal/client/session"
	"github.com/dmitrijs2005/newsexplorer/internal/common"
	"github.com/dmitrijs2005/newsexplorer/internal/filex"
	"github.com/dmitrijs2005/newsexplorer/internal/logging"
)

const dbFileName = "newsexplorer.db"

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators of an App. NewApp assembles the production set;
// tests pass fakes.
type Deps struct {
	Config   *config.Config
	Log      logging.Logger
	Backend  session.Backend
	Tokens   services.TokenStore
	Searcher newsapi.Searcher
	Health   pinger
	In       io.Reader
	Out      io.Writer
}

type App struct {
	config *config.Config
	log    logging.Logger
	out    io.Writer
	reader *bufio.Reader

	session *session.Manager
	modals  *modal.Machine
	signIn  *form.Form
	signUp  *form.Form
	search  *search.Flow
	health  pinger

	closers []func() error

	mu   sync.RWMutex
	mode Mode
}

// New wires the client state around d.
func New(d Deps) *App {
	cfg := d.Config
	if cfg == nil {
		cfg = &config.Config{}
		cfg.LoadDefaults()
	}
	log := d.Log
	if log == nil {
		log = logging.Nop()
	}
	in, out := d.In, d.Out
	if in == nil {
		in = strings.NewReader("")
	}
	if out == nil {
		out = io.Discard
	}

	modals := modal.New()
	signIn, signUp := form.NewSignIn(), form.NewSignUp()
	modals.Bind(modal.SignIn, signIn)
	modals.Bind(modal.SignUp, signUp)
	modals.OnChange(func(s modal.State) {
		log.Debug(context.Background(), "modal changed", "active", string(s.Active), "open", s.IsOpen)
	})

	sess := session.New(d.Backend, d.Tokens, modals, log)

	return &App{
		config:  cfg,
		log:     log,
		out:     out,
		reader:  bufio.NewReader(in),
		session: sess,
		modals:  modals,
		signIn:  signIn,
		signUp:  signUp,
		search:  search.New(d.Searcher, sess, log),
		health:  d.Health,
	}
}

// NewApp opens the local database under cfg.DataDir and connects the
// backend, health and news clients described by cfg. An empty DataDir keeps
// the token in memory only.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	var (
		tokens  services.TokenStore = &services.MemoryTokenStore{}
		closers []func() error
	)
	if cfg.DataDir != "" {
		dir, err := filex.EnsureDir(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("data dir: %w", err)
		}

		db, err := client.InitDatabase(ctx, filepath.Join(dir, dbFileName))
		if err != nil {
			log.Error(ctx, "error initializing database", "error", err)
			return nil, err
		}
		tokens = services.NewTokenStore(metadata.NewSQLiteRepository(db))
		closers = append(closers, db.Close)
	}

	health, err := client.NewHealthChecker(cfg.HealthAddr)
	if err != nil {
		for _, c := range closers {
			c()
		}
		return nil, err
	}
	closers = append(closers, health.Close)

	hc := &http.Client{Timeout: cfg.RequestTimeout}

	var searcher newsapi.Searcher
	switch cfg.NewsSource {
	case config.SourceRSS:
		searcher = newsapi.NewFeedSearcher(cfg.RSSFeeds, hc, log)
	default:
		searcher = newsapi.New(cfg.NewsAPIURL, cfg.NewsAPIKey, hc, log)
	}

	a := New(Deps{
		Config:   cfg,
		Log:      log,
		Backend:  client.NewHTTPClient(cfg.BackendURL, hc, log),
		Tokens:   tokens,
		Searcher: searcher,
		Health:   health,
		In:       in,
		Out:      out,
	})
	a.closers = closers
	return a, nil
}

// Close releases the database and the health connection.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// Run restores the stored session, starts the connectivity watcher and
// serves the REPL until the user exits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, "Welcome to NewsExplorer (type 'help' for commands)")
	a.restore(ctx)

	if a.health != nil {
		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go a.StartOnlineStatusWatcher(watchCtx, a.config.OnlineCheckInterval)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

// restore brings back the session of a previous run, if any.
func (a *App) restore(ctx context.Context) {
	err := a.session.Startup(ctx)
	switch {
	case errors.Is(err, common.ErrSuperseded):
	case err != nil:
		fmt.Fprintln(a.out, "Your session has expired. Please sign in again.")
	default:
		if u := a.session.Snapshot().CurrentUser; u != nil {
			fmt.Fprintf(a.out, "Welcome back, %s\n", u.Name)
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().IsLoggedIn
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()
	if changed {
		a.log.Info(ctx, "connectivity changed", "mode", string(mode))
	}
}

func (a *App) getStatus() string {
	s := ""
	if u := a.session.Snapshot().CurrentUser; u != nil {
		s = u.Name + " "
	}
	if m := a.Mode(); m != "" {
		s = s + string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// probe pings the backend once and records the resulting mode.
func (a *App) probe(ctx context.Context) {
	timeout := a.config.RequestTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	pctx, cancel := context.WithTimeout(ctx, timeout)
	err := a.health.Ping(pctx)
	cancel()

	if err != nil {
		a.log.Debug(ctx, "health probe failed", "error", err)
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}

// StartOnlineStatusWatcher probes the backend immediately and then every
// interval until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	a.probe(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.probe(ctx)
		case <-ctx.Done():
			return
		}
	}
}
