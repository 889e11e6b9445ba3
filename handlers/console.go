package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskmate/web-services/internal/backend"
	"github.com/taskmate/web-services/internal/drafts"
	"github.com/taskmate/web-services/internal/locale"
	"github.com/taskmate/web-services/internal/session"
	"github.com/taskmate/web-services/internal/storage"
	"github.com/taskmate/web-services/pkg/logger"
	"github.com/taskmate/web-services/pkg/metrics"
	"github.com/taskmate/web-services/pkg/middleware"
	"github.com/taskmate/web-services/templates"
)

const (
	loginPath     = "/panel/login"
	dashboardPath = "/panel/dashboard"
)

// Console serves the operator panel: session lifecycle, guarded list pages,
// the blog CMS, and notification broadcast.
type Console struct {
	mgr        *session.Manager
	api        *backend.Client
	drafts     drafts.Repository
	images     *storage.ImageStore
	production bool
}

func NewConsole(mgr *session.Manager, api *backend.Client, repo drafts.Repository, images *storage.ImageStore, production bool) *Console {
	return &Console{mgr: mgr, api: api, drafts: repo, images: images, production: production}
}

// Register mounts the panel routes. The login endpoint runs pre-auth and is
// rate limited; everything else sits behind the session guard, with the
// system-only pages behind a scope guard on top.
func (h *Console) Register(r *gin.Engine, loginLimiter gin.HandlerFunc) {
	r.SetHTMLTemplate(templates.Console())
	r.StaticFS("/static", templates.Static())

	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, dashboardPath) })
	r.GET(loginPath, h.loginForm)
	if loginLimiter != nil {
		r.POST(loginPath, loginLimiter, h.login)
	} else {
		r.POST(loginPath, h.login)
	}
	r.POST("/panel/logout", h.logout)

	auth := r.Group("/panel", middleware.RequireSession(h.mgr, loginPath))
	auth.GET("/dashboard", h.dashboard)
	auth.GET("/users", h.users)
	auth.GET("/organizations", h.organizations)
	auth.GET("/teams-projects", h.teams)
	auth.GET("/payments", h.payments)

	sys := auth.Group("", middleware.RequireScope(h.mgr, dashboardPath, session.ScopeSystem))
	sys.GET("/analytics", h.analytics)
	sys.GET("/blog", h.blogAdmin)
	sys.POST("/blog", h.blogCreate)
	sys.GET("/notifications", h.notificationsForm)
	sys.POST("/notifications", h.notificationsSend)
}

func (h *Console) base(page, title string) gin.H {
	cur := h.mgr.Current()
	metrics.PageRenders.WithLabelValues("console", page).Inc()
	return gin.H{
		"Page":     page,
		"Title":    title,
		"Scope":    string(cur.Scope),
		"Username": cur.Username,
		"Fallback": false,
	}
}

func (h *Console) loginForm(c *gin.Context) {
	if !h.mgr.Current().Empty() {
		c.Redirect(http.StatusFound, dashboardPath)
		return
	}
	c.HTML(http.StatusOK, "login", gin.H{
		"Error": "",
		"Scope": c.DefaultQuery("scope", "system"),
		"Next":  c.Query("next"),
	})
}

func (h *Console) login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	requested := session.ScopeSystem
	if c.PostForm("scope") == "org" {
		requested = session.ScopeOrg
	}

	if h.mgr.Loading() {
		c.HTML(http.StatusConflict, "login", gin.H{
			"Error": "A sign-in is already in progress.",
			"Scope": c.PostForm("scope"),
			"Next":  c.PostForm("next"),
		})
		return
	}

	if err := h.mgr.Login(c.Request.Context(), username, password, requested); err != nil {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		msg := h.mgr.Err()
		if msg == "" {
			msg = "Sign-in failed. Check your credentials and try again."
		}
		c.HTML(http.StatusUnauthorized, "login", gin.H{
			"Error": msg,
			"Scope": c.PostForm("scope"),
			"Next":  c.PostForm("next"),
		})
		return
	}
	metrics.LoginAttempts.WithLabelValues("success").Inc()
	c.Redirect(http.StatusSeeOther, safeNext(c.PostForm("next")))
}

// safeNext confines the post-login redirect to panel paths.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/panel/") && !strings.Contains(next, "//") {
		return next
	}
	return dashboardPath
}

func (h *Console) logout(c *gin.Context) {
	h.mgr.Logout()
	c.Redirect(http.StatusSeeOther, loginPath)
}

func (h *Console) dashboard(c *gin.Context) {
	data := h.base("dashboard", "Dashboard")
	summary, err := h.api.AnalyticsSummary(c.Request.Context())
	if err != nil {
		logger.Warnf("console: dashboard summary fetch failed: %v", err)
		metrics.FetchFallbacks.WithLabelValues("dashboard").Inc()
		summary = sampleAnalyticsSummary()
		data["Fallback"] = true
	}
	data["Summary"] = summary
	c.HTML(http.StatusOK, "dashboard", data)
}

func (h *Console) users(c *gin.Context) {
	data := h.base("users", "Users")
	list, err := h.api.ListUsers(c.Request.Context())
	if err != nil {
		logger.Warnf("console: users fetch failed: %v", err)
		metrics.FetchFallbacks.WithLabelValues("users").Inc()
		list = sampleUsers()
		data["Fallback"] = true
	}
	data["Users"] = list
	c.HTML(http.StatusOK, "users", data)
}

func (h *Console) organizations(c *gin.Context) {
	data := h.base("organizations", "Organizations")
	list, err := h.api.ListOrgs(c.Request.Context())
	if err != nil {
		logger.Warnf("console: organizations fetch failed: %v", err)
		metrics.FetchFallbacks.WithLabelValues("organizations").Inc()
		list = sampleOrgs()
		data["Fallback"] = true
	}
	data["Organizations"] = list
	c.HTML(http.StatusOK, "organizations", data)
}

func (h *Console) teams(c *gin.Context) {
	data := h.base("teams", "Teams & Projects")
	list, err := h.api.ListTeams(c.Request.Context())
	if err != nil {
		logger.Warnf("console: teams fetch failed: %v", err)
		metrics.FetchFallbacks.WithLabelValues("teams").Inc()
		list = sampleTeams()
		data["Fallback"] = true
	}
	data["Teams"] = list
	c.HTML(http.StatusOK, "teams", data)
}

func (h *Console) payments(c *gin.Context) {
	data := h.base("payments", "Payments")
	list, err := h.api.ListPayments(c.Request.Context())
	if err != nil {
		logger.Warnf("console: payments fetch failed: %v", err)
		metrics.FetchFallbacks.WithLabelValues("payments").Inc()
		list = samplePayments()
		data["Fallback"] = true
	}
	summary, err := h.api.PaymentsSummary(c.Request.Context())
	if err != nil {
		logger.Warnf("console: payments summary fetch failed: %v", err)
		metrics.FetchFallbacks.WithLabelValues("payments").Inc()
		summary = samplePaymentsSummary()
		data["Fallback"] = true
	}
	data["Payments"] = list
	data["Summary"] = summary
	c.HTML(http.StatusOK, "payments", data)
}

func (h *Console) analytics(c *gin.Context) {
	data := h.base("analytics", "Analytics")
	summary, err := h.api.AnalyticsSummary(c.Request.Context())
	if err != nil {
		logger.Warnf("console: analytics summary fetch failed: %v", err)
		metrics.FetchFallbacks.WithLabelValues("analytics").Inc()
		summary = sampleAnalyticsSummary()
		data["Fallback"] = true
	}
	insights, err := h.api.AnalyticsInsights(c.Request.Context())
	if err != nil {
		logger.Warnf("console: insights fetch failed: %v", err)
		metrics.FetchFallbacks.WithLabelValues("analytics").Inc()
		insights = sampleInsights()
		data["Fallback"] = true
	}
	data["Summary"] = summary
	data["Insights"] = insights
	c.HTML(http.StatusOK, "analytics", data)
}

func (h *Console) blogAdmin(c *gin.Context) {
	data := h.base("blog", "Blog")
	posts, err := h.api.ListBlogPosts(c.Request.Context())
	if err != nil {
		logger.Warnf("console: blog list fetch failed: %v", err)
		metrics.FetchFallbacks.WithLabelValues("blog").Inc()
		posts = sampleBlogPosts()
		data["Fallback"] = true
	}
	data["Posts"] = posts

	if h.drafts != nil {
		if local, derr := h.drafts.List(); derr == nil {
			data["Drafts"] = local
		}
	}

	switch c.Query("saved") {
	case "1":
		data["Flash"] = "Post published."
	case "draft":
		data["Flash"] = "Backend unreachable; post retained as a local draft."
	}
	if c.Query("failed") == "1" {
		data["Error"] = "Publishing failed. Try again."
	}
	c.HTML(http.StatusOK, "blog_admin", data)
}

func (h *Console) blogCreate(c *gin.Context) {
	post := backend.BlogPostCreate{
		Lang:            locale.Normalize(c.PostForm("lang")).String(),
		Slug:            c.PostForm("slug"),
		Title:           c.PostForm("title"),
		ContentMarkdown: c.PostForm("content_markdown"),
		Author:          c.PostForm("author"),
		Published:       c.PostForm("published") == "true",
	}

	if url, ok := h.uploadCover(c, post.Slug); ok {
		post.ContentMarkdown += fmt.Sprintf("\n\n![%s](%s)\n", post.Title, url)
	}

	if _, err := h.api.CreateBlogPost(c.Request.Context(), post); err != nil {
		if h.production || h.drafts == nil {
			logger.Errorf("console: blog publish failed: %v", err)
			c.Redirect(http.StatusSeeOther, "/panel/blog?failed=1")
			return
		}
		logger.Warnf("console: blog publish failed, retaining draft: %v", err)
		draft := &drafts.Draft{
			Lang:            post.Lang,
			Slug:            post.Slug,
			Title:           post.Title,
			ContentMarkdown: post.ContentMarkdown,
			Author:          post.Author,
			Published:       post.Published,
			CreatedAt:       time.Now(),
		}
		if _, derr := h.drafts.Save(draft); derr != nil {
			logger.Errorf("console: draft save failed: %v", derr)
			c.Redirect(http.StatusSeeOther, "/panel/blog?failed=1")
			return
		}
		c.Redirect(http.StatusSeeOther, "/panel/blog?saved=draft")
		return
	}
	c.Redirect(http.StatusSeeOther, "/panel/blog?saved=1")
}

// uploadCover stores an attached cover image, when both a file and an image
// store are present, and returns its public URL.
func (h *Console) uploadCover(c *gin.Context, slug string) (string, bool) {
	if h.images == nil {
		return "", false
	}
	fh, err := c.FormFile("image")
	if err != nil {
		return "", false
	}
	f, err := fh.Open()
	if err != nil {
		logger.Errorf("console: cover open failed: %v", err)
		return "", false
	}
	defer f.Close()
	name := slug + "-" + fh.Filename
	url, err := h.images.Upload(c.Request.Context(), name, fh.Header.Get("Content-Type"), f, fh.Size)
	if err != nil {
		logger.Errorf("console: cover upload failed: %v", err)
		return "", false
	}
	return url, true
}

func (h *Console) notificationsForm(c *gin.Context) {
	data := h.base("notifications", "Notifications")
	if c.Query("sent") == "1" {
		data["Flash"] = "Notification queued for delivery."
	}
	if c.Query("failed") == "1" {
		data["Error"] = "Sending failed. Try again."
	}
	c.HTML(http.StatusOK, "notifications", data)
}

func (h *Console) notificationsSend(c *gin.Context) {
	n := backend.Notification{
		Title:   c.PostForm("title"),
		Message: c.PostForm("message"),
	}
	if err := h.api.SendNotification(c.Request.Context(), n); err != nil {
		if h.production {
			logger.Errorf("console: notification send failed: %v", err)
			c.Redirect(http.StatusSeeOther, "/panel/notifications?failed=1")
			return
		}
		logger.Warnf("console: notification send failed, simulating success: %v", err)
	}
	c.Redirect(http.StatusSeeOther, "/panel/notifications?sent=1")
}
