package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	res   LoginResult
	err   error
	calls []Scope
}

func (f *fakeAPI) Login(ctx context.Context, scope Scope, username, password string) (LoginResult, error) {
	f.calls = append(f.calls, scope)
	return f.res, f.err
}

func newFileManager(t *testing.T, api LoginAPI, production bool) (*Manager, *FileStore) {
	t.Helper()
	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	m := NewManager(ManagerOptions{API: api, Store: store, Production: production, DevTTL: 12 * time.Hour})
	return m, store
}

func TestLoginUsesClaimScopeOverRequested(t *testing.T) {
	// token minted for system scope carries a system_admin role claim
	tok, err := DevToken("s", "root", ScopeSystem, time.Hour)
	require.NoError(t, err)

	api := &fakeAPI{res: LoginResult{Token: tok}}
	m, _ := newFileManager(t, api, true)

	// operator asked for org scope, token says system_admin
	require.NoError(t, m.Login(context.Background(), "root", "pw", ScopeOrg))
	sess := m.Current()
	assert.Equal(t, ScopeSystem, sess.Scope)
	assert.Contains(t, sess.Roles, "system_admin")
	assert.Equal(t, "root", sess.Username)
	assert.InDelta(t, time.Now().Add(time.Hour).Unix(), sess.ExpiresAt, 5)
}

func TestLoginOpaqueTokenFallsBackToLocalExpiry(t *testing.T) {
	api := &fakeAPI{res: LoginResult{Token: "opaque-credential"}}
	m, _ := newFileManager(t, api, true)

	require.NoError(t, m.Login(context.Background(), "bob", "pw", ScopeOrg))
	sess := m.Current()
	assert.Equal(t, ScopeOrg, sess.Scope)
	assert.Equal(t, []string{"org_admin"}, sess.Roles)
	assert.InDelta(t, time.Now().Add(12*time.Hour).Unix(), sess.ExpiresAt, 5)
}

func TestLoginServerTTLUsedWhenTokenHasNoExp(t *testing.T) {
	api := &fakeAPI{res: LoginResult{Token: "opaque", ExpiresIn: 30 * time.Minute}}
	m, _ := newFileManager(t, api, true)

	require.NoError(t, m.Login(context.Background(), "bob", "pw", ScopeOrg))
	assert.InDelta(t, time.Now().Add(30*time.Minute).Unix(), m.Current().ExpiresAt, 5)
}

func TestLoginFailureProduction(t *testing.T) {
	api := &fakeAPI{err: errors.New("connection refused")}
	m, store := newFileManager(t, api, true)

	err := m.Login(context.Background(), "bob", "pw", ScopeSystem)
	var authErr *AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.True(t, m.Current().Empty())
	assert.Contains(t, m.Err(), "authentication failed")

	// no partial session is ever persisted
	stored, err := store.Load()
	require.NoError(t, err)
	assert.True(t, stored.Empty())
}

func TestLoginFailureDevelopmentMintsLocalToken(t *testing.T) {
	api := &fakeAPI{err: errors.New("connection refused")}
	m, _ := newFileManager(t, api, false)

	require.NoError(t, m.Login(context.Background(), "dev", "pw", ScopeSystem))
	sess := m.Current()
	assert.False(t, sess.Empty())
	assert.Equal(t, ScopeSystem, sess.Scope)
	assert.Equal(t, "dev", sess.Username)
	assert.Greater(t, sess.ExpiresAt, time.Now().Unix())
}

func TestLogoutClearsPersistedStorage(t *testing.T) {
	tok, _ := DevToken("s", "root", ScopeSystem, time.Hour)
	api := &fakeAPI{res: LoginResult{Token: tok}}
	m, store := newFileManager(t, api, true)

	require.NoError(t, m.Login(context.Background(), "root", "pw", ScopeSystem))
	m.Logout()

	assert.True(t, m.Current().Empty())
	stored, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, Session{}, stored)
}

func TestRepeatedLoginOverwritesSession(t *testing.T) {
	tok1, _ := DevToken("s", "first", ScopeOrg, time.Hour)
	api := &fakeAPI{res: LoginResult{Token: tok1}}
	m, _ := newFileManager(t, api, true)

	require.NoError(t, m.Login(context.Background(), "first", "pw", ScopeOrg))
	assert.Equal(t, "first", m.Current().Username)

	tok2, _ := DevToken("s", "second", ScopeSystem, time.Hour)
	api.res = LoginResult{Token: tok2}
	require.NoError(t, m.Login(context.Background(), "second", "pw", ScopeSystem))

	sess := m.Current()
	assert.Equal(t, "second", sess.Username)
	assert.Equal(t, ScopeSystem, sess.Scope)
}

func TestExpiryTimerLogsOut(t *testing.T) {
	tok, _ := DevToken("s", "root", ScopeSystem, 50*time.Millisecond)
	api := &fakeAPI{res: LoginResult{Token: tok}}
	m, store := newFileManager(t, api, true)

	require.NoError(t, m.Login(context.Background(), "root", "pw", ScopeSystem))
	assert.False(t, m.Current().Empty())

	assert.Eventually(t, func() bool { return m.Current().Empty() }, 2*time.Second, 10*time.Millisecond)
	stored, err := store.Load()
	require.NoError(t, err)
	assert.True(t, stored.Empty())
}

func TestRehydrateExpiredSessionLogsOutOnNextTick(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, store.Save(Session{
		Token:     "stale",
		Scope:     ScopeSystem,
		Username:  "root",
		ExpiresAt: time.Now().Add(-time.Minute).Unix(),
	}))

	m := NewManager(ManagerOptions{API: &fakeAPI{}, Store: store, Production: true})
	m.Rehydrate()

	assert.Eventually(t, func() bool { return m.Current().Empty() }, 2*time.Second, 10*time.Millisecond)
}

func TestRehydrateFutureExpiryStaysLoggedIn(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, store.Save(Session{
		Token:     "live",
		Scope:     ScopeOrg,
		Username:  "bob",
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}))

	m := NewManager(ManagerOptions{API: &fakeAPI{}, Store: store, Production: true})
	m.Rehydrate()

	sess := m.Current()
	assert.Equal(t, "bob", sess.Username)
	assert.True(t, sess.Active(time.Now()))
}

func TestSessionWithoutExpiryNeverSchedulesTimer(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, store.Save(Session{Token: "immortal", Scope: ScopeOrg, Username: "bob"}))

	m := NewManager(ManagerOptions{API: &fakeAPI{}, Store: store, Production: true})
	m.Rehydrate()

	m.mu.Lock()
	timer := m.timer
	m.mu.Unlock()
	assert.Nil(t, timer)
	assert.True(t, m.Current().Active(time.Now()))
}
