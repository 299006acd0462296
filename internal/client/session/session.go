// Package session owns the signed-in state of the client: the persisted
// token, the current user and the saved-article store.
//
// Nothing outside the Manager mutates these. Each flow captures the session
// generation when it starts; Logout bumps it, so a flow that resumes after a
// logout drops its result and reports common.ErrSuperseded.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/newsexplorer/internal/client/asyncop"
	"github.com/dmitrijs2005/newsexplorer/internal/client/modal"
	"github.com/dmitrijs2005/newsexplorer/internal/client/models"
	"github.com/dmitrijs2005/newsexplorer/internal/client/savedarticles"
	"github.com/dmitrijs2005/newsexplorer/internal/client/services"
	"github.com/dmitrijs2005/newsexplorer/internal/common"
	"github.com/dmitrijs2005/newsexplorer/internal/logging"
)

type State int

const (
	Anonymous State = iota
	AuthChecking
	Authenticating
	Authenticated
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case AuthChecking:
		return "auth-checking"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Session is a read-only snapshot. CurrentUser is nil unless logged in.
type Session struct {
	IsLoggedIn  bool
	CurrentUser *models.User
	AuthLoading bool
	State       State
}

// Backend is the part of the API the session drives.
type Backend interface {
	Register(ctx context.Context, reg models.Registration) (models.User, error)
	Authorize(ctx context.Context, creds models.Credentials) (string, error)
	CheckToken(ctx context.Context, token string) (models.User, error)
	savedarticles.Remote
}

// Modals is the modal machine as seen by the session.
type Modals interface {
	Open(name modal.Name)
	Close()
}

type Manager struct {
	backend Backend
	tokens  services.TokenStore
	modals  Modals
	store   *savedarticles.Store
	log     logging.Logger

	authOp  *asyncop.Op
	savedOp *asyncop.Op
	loadOp  *asyncop.Op

	// tokenMu orders token slot writes; it is taken before mu.
	tokenMu sync.Mutex

	mu          sync.RWMutex
	gen         uint64
	state       State
	user        *models.User
	token       string
	authLoading bool
}

func New(backend Backend, tokens services.TokenStore, modals Modals, log logging.Logger) *Manager {
	if log == nil {
		log = logging.Nop()
	}
	return &Manager{
		backend:     backend,
		tokens:      tokens,
		modals:      modals,
		store:       savedarticles.New(backend, log),
		log:         log,
		authOp:      asyncop.New("auth", log),
		savedOp:     asyncop.New("saved-articles", log),
		loadOp:      asyncop.New("saved-load", log),
		authLoading: true,
	}
}

// AuthOp is the status channel shared by Login and Register.
func (m *Manager) AuthOp() *asyncop.Op { return m.authOp }

// SavedOp is the status channel of saved-article mutations.
func (m *Manager) SavedOp() *asyncop.Op { return m.savedOp }

// LoadOp is the status channel of saved-article reloads.
func (m *Manager) LoadOp() *asyncop.Op { return m.loadOp }

func (m *Manager) Snapshot() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := Session{
		IsLoggedIn:  m.state == Authenticated,
		AuthLoading: m.authLoading,
		State:       m.state,
	}
	if m.user != nil {
		u := *m.user
		s.CurrentUser = &u
	}
	return s
}

func (m *Manager) generation() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.gen
}

func (m *Manager) currentToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// transition sets the state when gen is still current.
func (m *Manager) transition(gen uint64, s State) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.gen {
		return false
	}
	m.state = s
	return true
}

// persistToken writes the token slot unless a logout happened since gen.
func (m *Manager) persistToken(ctx context.Context, gen uint64, token string) error {
	m.tokenMu.Lock()
	defer m.tokenMu.Unlock()
	if m.generation() != gen {
		return common.ErrSuperseded
	}
	return m.tokens.SetToken(ctx, token)
}

// resetLocked settles anonymous. m.mu must be held.
func (m *Manager) resetLocked() {
	m.state = Anonymous
	m.user = nil
	m.token = ""
	m.authLoading = false
}

// dropStored removes the stored token, then clears the saved articles.
// m.tokenMu must be held; m.mu must not be. Storage errors are logged.
func (m *Manager) dropStored(ctx context.Context) {
	if err := m.tokens.RemoveToken(ctx); err != nil {
		m.log.Error(ctx, "failed to remove token", "error", err)
	}
	m.store.Clear()
}

// discard drops the token, user and saved articles of the flow started at
// gen and settles anonymous.
func (m *Manager) discard(ctx context.Context, gen uint64) {
	m.tokenMu.Lock()
	defer m.tokenMu.Unlock()

	m.mu.Lock()
	if gen != m.gen {
		m.mu.Unlock()
		return
	}
	m.resetLocked()
	m.mu.Unlock()

	m.dropStored(ctx)
}

// authenticate publishes user and token as the signed-in session.
func (m *Manager) authenticate(gen uint64, user models.User, token string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.gen {
		return false
	}
	m.state = Authenticated
	m.user = &user
	m.token = token
	return true
}

func (m *Manager) settleAuthLoading(gen uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.gen {
		return false
	}
	m.authLoading = false
	return true
}

// Startup restores the session from the stored token. Without a token the
// session settles anonymous. The user is published before saved articles
// are loaded. A token the backend rejects, or a failure to load saved
// articles, discards the token. AuthLoading is cleared last.
func (m *Manager) Startup(ctx context.Context) error {
	gen := m.generation()

	token, err := m.tokens.Token(ctx)
	if err != nil {
		m.log.Warn(ctx, "cannot read stored token", "error", err)
	}
	if token == "" {
		m.mu.Lock()
		if gen == m.gen {
			m.state = Anonymous
			m.authLoading = false
		}
		m.mu.Unlock()
		return nil
	}

	if !m.transition(gen, AuthChecking) {
		return common.ErrSuperseded
	}

	user, err := m.backend.CheckToken(ctx, token)
	if err == nil && !m.authenticate(gen, user, token) {
		return common.ErrSuperseded
	}
	if err == nil {
		err = m.store.Load(ctx, token)
	}
	if err != nil {
		m.log.Warn(ctx, "stored session rejected", "error", err)
		m.discard(ctx, gen)
		return fmt.Errorf("restore session: %w", err)
	}

	if !m.settleAuthLoading(gen) {
		return common.ErrSuperseded
	}
	m.log.Info(ctx, "session restored", "user", user.Email, "saved", m.store.Len())
	return nil
}

// Login signs in on the auth channel: authorize, persist the token, fetch
// and publish the user, load saved articles, close the active modal. It is
// all-or-nothing: a failure after the token was persisted removes it again.
func (m *Manager) Login(ctx context.Context, creds models.Credentials) error {
	return asyncop.Do(ctx, m.authOp, func(ctx context.Context) error {
		return m.login(ctx, creds)
	})
}

func (m *Manager) login(ctx context.Context, creds models.Credentials) error {
	gen := m.generation()

	m.mu.Lock()
	prev := m.state
	if gen == m.gen {
		m.state = Authenticating
	}
	m.mu.Unlock()

	restore := func() {
		m.mu.Lock()
		if gen == m.gen && m.state == Authenticating {
			m.state = prev
		}
		m.mu.Unlock()
	}

	token, err := m.backend.Authorize(ctx, creds)
	if err != nil {
		restore()
		return fmt.Errorf("sign in: %w", err)
	}
	if token == "" {
		restore()
		return fmt.Errorf("sign in: %w", common.ErrNoToken)
	}
	if err := m.persistToken(ctx, gen, token); err != nil {
		restore()
		return fmt.Errorf("sign in: %w", err)
	}

	user, err := m.backend.CheckToken(ctx, token)
	if err == nil && !m.authenticate(gen, user, token) {
		return fmt.Errorf("sign in: %w", common.ErrSuperseded)
	}
	if err == nil {
		err = m.store.Load(ctx, token)
	}
	if err != nil {
		m.discard(ctx, gen)
		return fmt.Errorf("sign in: %w", err)
	}
	if !m.settleAuthLoading(gen) {
		return fmt.Errorf("sign in: %w", common.ErrSuperseded)
	}

	if m.modals != nil {
		m.modals.Close()
	}
	m.log.Info(ctx, "signed in", "user", user.Email, "saved", m.store.Len())
	return nil
}

// Register creates an account on the auth channel and opens the success
// modal. It does not sign in.
func (m *Manager) Register(ctx context.Context, reg models.Registration) (models.User, error) {
	gen := m.generation()
	user, err := asyncop.Run(ctx, m.authOp, func(ctx context.Context) (models.User, error) {
		return m.backend.Register(ctx, reg)
	})
	if err != nil {
		return models.User{}, fmt.Errorf("sign up: %w", err)
	}
	if m.generation() != gen {
		return user, fmt.Errorf("sign up: %w", common.ErrSuperseded)
	}
	if m.modals != nil {
		m.modals.Open(modal.Success)
	}
	return user, nil
}

// Logout forgets the token, the user, saved articles and keywords. Failing
// to remove the stored token is logged, never returned.
func (m *Manager) Logout(ctx context.Context) {
	m.tokenMu.Lock()
	defer m.tokenMu.Unlock()

	m.mu.Lock()
	m.gen++
	m.resetLocked()
	m.mu.Unlock()

	m.dropStored(ctx)
	m.log.Info(ctx, "signed out")
}

// SaveArticle saves a on the saved-articles channel. The result is the
// call's own, even when a newer mutation owns the channel status.
func (m *Manager) SaveArticle(ctx context.Context, a models.Article) (models.SavedArticle, error) {
	token := m.currentToken()
	return asyncop.Mutate(ctx, m.savedOp, func(ctx context.Context) (models.SavedArticle, error) {
		return m.store.Save(ctx, token, a)
	})
}

// DeleteArticle removes the saved article with url on the saved-articles
// channel. An unknown url yields common.ErrNotFound.
func (m *Manager) DeleteArticle(ctx context.Context, url string) error {
	token := m.currentToken()
	return asyncop.MutateDo(ctx, m.savedOp, func(ctx context.Context) error {
		return m.store.Delete(ctx, token, url)
	})
}

// ReloadSaved refetches the saved articles on the load channel. A reload
// overtaken by a newer one returns common.ErrSuperseded.
func (m *Manager) ReloadSaved(ctx context.Context) error {
	token := m.currentToken()
	if token == "" {
		return common.ErrUnauthenticated
	}
	return asyncop.Do(ctx, m.loadOp, func(ctx context.Context) error {
		return m.store.Load(ctx, token)
	})
}

// ToggleSaved saves a when it is not saved yet and deletes it otherwise.
func (m *Manager) ToggleSaved(ctx context.Context, a models.Article) (saved bool, err error) {
	if m.store.IsSaved(a.URL) {
		return false, m.DeleteArticle(ctx, a.URL)
	}
	if _, err := m.SaveArticle(ctx, a); err != nil {
		if errors.Is(err, common.ErrAlreadySaved) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

// TagSearch merges search keywords into the keyword index.
func (m *Manager) TagSearch(keywords []string) { m.store.AddKeywords(keywords) }

func (m *Manager) SavedArticles() []models.SavedArticle { return m.store.Articles() }
func (m *Manager) Keywords() []string                   { return m.store.Keywords() }
func (m *Manager) IsSaved(url string) bool              { return m.store.IsSaved(url) }
