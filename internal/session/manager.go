package session

import (
	"context"
	"sync"
	"time"

	"github.com/taskmate/web-services/pkg/logger"
)

// LoginResult is what a login endpoint hands back: the bearer token plus an
// optional server-supplied time-to-live.
type LoginResult struct {
	Token     string
	ExpiresIn time.Duration // 0 when the response carried no TTL
}

// LoginAPI is the slice of the backend client the manager depends on.
type LoginAPI interface {
	Login(ctx context.Context, scope Scope, username, password string) (LoginResult, error)
}

// Manager owns the console's authentication lifecycle: one current session,
// persisted on every change, with an expiry timer that logs the operator out
// when the token's lifetime runs out. All methods are safe for concurrent
// use; route guards read the session only through Current.
type Manager struct {
	api        LoginAPI
	store      Store
	production bool
	devTTL     time.Duration
	devSecret  string

	mu      sync.Mutex
	cur     Session
	timer   *time.Timer
	loading bool
	lastErr string

	// now is swapped in tests
	now func() time.Time
	// onExpire, when set, runs after the expiry timer clears the session
	onExpire func()
}

// ManagerOptions configures a Manager.
type ManagerOptions struct {
	API        LoginAPI
	Store      Store
	Production bool
	// DevTTL is the fixed expiry window used when a token carries no exp
	// claim and the server supplied no TTL, and the lifetime of dev tokens.
	DevTTL    time.Duration
	DevSecret string
}

func NewManager(opts ManagerOptions) *Manager {
	if opts.DevTTL <= 0 {
		opts.DevTTL = 12 * time.Hour
	}
	return &Manager{
		api:        opts.API,
		store:      opts.Store,
		production: opts.Production,
		devTTL:     opts.DevTTL,
		devSecret:  opts.DevSecret,
		now:        time.Now,
	}
}

// Rehydrate loads the persisted session and re-arms the expiry timer.
// A stored session whose expiry already passed is cleared on the next tick.
func (m *Manager) Rehydrate() {
	if m.store == nil {
		return
	}
	s, err := m.store.Load()
	if err != nil {
		logger.Warnf("session: rehydrate failed, starting logged out: %v", err)
		return
	}
	if s.Empty() {
		return
	}
	m.mu.Lock()
	m.cur = s
	m.armTimerLocked()
	m.mu.Unlock()
	logger.Infof("session: rehydrated for %q (scope=%s)", s.Username, s.Scope)
}

// Login exchanges credentials at the scope-specific endpoint and replaces the
// current session atomically. On endpoint failure it returns an
// *AuthenticationError in production; in development it mints a local token
// instead so the console stays usable without a live backend.
func (m *Manager) Login(ctx context.Context, username, password string, requested Scope) error {
	m.mu.Lock()
	m.loading = true
	m.lastErr = ""
	m.mu.Unlock()

	res, err := m.api.Login(ctx, requested, username, password)
	if err != nil {
		if m.production {
			authErr := &AuthenticationError{Err: err}
			m.mu.Lock()
			m.loading = false
			m.lastErr = authErr.Error()
			m.mu.Unlock()
			return authErr
		}
		logger.Warnf("session: backend login failed, issuing development token: %v", err)
		tok, derr := DevToken(m.devSecret, username, requested, m.devTTL)
		if derr != nil {
			authErr := &AuthenticationError{Err: derr}
			m.mu.Lock()
			m.loading = false
			m.lastErr = authErr.Error()
			m.mu.Unlock()
			return authErr
		}
		res = LoginResult{Token: tok}
	}

	sess := m.buildSession(res, username, requested)

	m.mu.Lock()
	m.cur = sess
	m.loading = false
	m.persistLocked()
	m.armTimerLocked()
	m.mu.Unlock()

	logger.Infof("session: logged in as %q (scope=%s)", sess.Username, sess.Scope)
	return nil
}

// buildSession merges decoded token claims with the caller-requested scope.
// A decodable scope claim always wins over the requested scope; a decodable
// exp claim always wins over the server-supplied TTL.
func (m *Manager) buildSession(res LoginResult, username string, requested Scope) Session {
	sess := Session{
		Token:    res.Token,
		Scope:    requested,
		Roles:    defaultRoles[requested],
		Username: username,
	}

	claims, err := DecodeClaims(res.Token)
	if err == nil {
		if len(claims.Roles) > 0 {
			sess.Roles = claims.Roles
		}
		sess.Scope = ScopeFromRoles(claims.Roles, requested)
		if claims.Username != "" {
			sess.Username = claims.Username
		} else if claims.Subject != "" {
			sess.Username = claims.Subject
		}
		switch {
		case claims.ExpiresAt > 0:
			sess.ExpiresAt = claims.ExpiresAt
		case res.ExpiresIn > 0:
			sess.ExpiresAt = m.now().Add(res.ExpiresIn).Unix()
		}
		return sess
	}

	// opaque token: locally computed expiry
	if res.ExpiresIn > 0 {
		sess.ExpiresAt = m.now().Add(res.ExpiresIn).Unix()
	} else {
		sess.ExpiresAt = m.now().Add(m.devTTL).Unix()
	}
	return sess
}

// Logout unconditionally clears the session, overwrites persisted storage
// with the empty shape, and cancels any pending expiry timer.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearLocked()
}

func (m *Manager) clearLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.cur = Session{}
	m.lastErr = ""
	m.persistLocked()
}

func (m *Manager) persistLocked() {
	if m.store == nil {
		return
	}
	if err := m.store.Save(m.cur); err != nil {
		logger.Errorf("session: persist failed: %v", err)
	}
}

// armTimerLocked schedules the expiry logout. Sessions without a resolvable
// expiry never get a timer.
func (m *Manager) armTimerLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	if m.cur.Empty() || m.cur.ExpiresAt == 0 {
		return
	}
	d := time.Until(time.Unix(m.cur.ExpiresAt, 0))
	if d < 0 {
		d = 0
	}
	m.timer = time.AfterFunc(d, m.expire)
}

func (m *Manager) expire() {
	m.mu.Lock()
	if m.cur.Empty() || m.cur.Active(m.now()) {
		m.mu.Unlock()
		return
	}
	logger.Infof("session: expired for %q, logging out", m.cur.Username)
	m.clearLocked()
	hook := m.onExpire
	m.mu.Unlock()
	if hook != nil {
		hook()
	}
}

// Current returns a read-only copy of the session.
func (m *Manager) Current() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cur
}

// Loading reports whether a login call is in flight.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// Err returns the last login failure message for display, empty when none.
func (m *Manager) Err() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// Token returns the current bearer token, empty when logged out. It lets the
// backend client attach credentials without re-deriving session state.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cur.Token
}
