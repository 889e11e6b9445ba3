package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskmate/web-services/internal/session"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestLoginHitsScopeSpecificEndpoint(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at","expires_in":3600}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	res, err := c.Login(context.Background(), session.ScopeSystem, "root", "pw")
	require.NoError(t, err)
	assert.Equal(t, "at", res.Token)
	assert.Equal(t, time.Hour, res.ExpiresIn)

	_, err = c.Login(context.Background(), session.ScopeOrg, "bob", "pw")
	require.NoError(t, err)

	assert.Equal(t, []string{"/api/admin/auth/login", "/api/orgs/admin/login"}, paths)
}

func TestLoginAcceptsAlternateTokenField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"token":"legacy"}`))
	}))
	defer srv.Close()

	res, err := New(srv.URL, time.Second).Login(context.Background(), session.ScopeSystem, "root", "pw")
	require.NoError(t, err)
	assert.Equal(t, "legacy", res.Token)
	assert.Zero(t, res.ExpiresIn)
}

func TestLoginFailureSurfacesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":{"code":"error_invalid_credentials"}}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, time.Second).Login(context.Background(), session.ScopeSystem, "root", "bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestListUsersResultsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"results":[{"id":1,"username":"alice"},{"id":2,"username":"bob"}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second).WithTokenSource(staticToken("tok"))
	users, err := c.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
}

func TestPublicBlogToleratesBareArrayAndItems(t *testing.T) {
	bodies := []string{
		`[{"id":1,"lang":"fa","title":"سلام"}]`,
		`{"items":[{"id":1,"lang":"fa","title":"سلام"}]}`,
	}
	for _, body := range bodies {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "fa", r.URL.Query().Get("lang"))
			_, _ = w.Write([]byte(body))
		}))
		posts, err := New(srv.URL, time.Second).PublicBlogPosts(context.Background(), "fa")
		srv.Close()
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "سلام", posts[0].Title)
	}
}

func TestUnrecognizedEnvelopeIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"unexpected":"shape"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, time.Second).ListOrgs(context.Background())
	assert.Error(t, err)
}

func TestContextCancellationAbortsFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	_, err := New(srv.URL, 5*time.Second).ListTeams(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCreateBlogPost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/admin/blog", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":7,"lang":"en","slug":"hello","title":"Hello","published":true}`))
	}))
	defer srv.Close()

	post, err := New(srv.URL, time.Second).CreateBlogPost(context.Background(), BlogPostCreate{
		Lang: "en", Slug: "hello", Title: "Hello", Published: true,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 7, post.ID)
}
