package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskmate/web-services/internal/backend"
	"github.com/taskmate/web-services/internal/content"
	"github.com/taskmate/web-services/internal/i18n"
	"github.com/taskmate/web-services/internal/locale"
	"github.com/taskmate/web-services/internal/markdown"
	"github.com/taskmate/web-services/pkg/logger"
	"github.com/taskmate/web-services/pkg/metrics"
	"github.com/taskmate/web-services/pkg/middleware"
	"github.com/taskmate/web-services/templates"
)

// Site serves the localized marketing pages. Every page lives under a locale
// prefix; unprefixed paths are redirected by the locale middleware.
type Site struct {
	api           *backend.Client
	baseURL       string
	defaultLocale locale.Locale
	production    bool
}

func NewSite(api *backend.Client, baseURL, defaultLocale string, production bool) *Site {
	return &Site{
		api:           api,
		baseURL:       baseURL,
		defaultLocale: locale.Normalize(defaultLocale),
		production:    production,
	}
}

// Register mounts one route group per supported locale plus the negotiating
// redirect for everything else.
func (h *Site) Register(r *gin.Engine) {
	r.SetHTMLTemplate(templates.Site())
	r.StaticFS("/static", templates.Static())

	for _, l := range locale.Supported {
		l := l
		g := r.Group("/" + l.String())
		g.GET("", h.home(l))
		g.GET("/features", h.features(l))
		g.GET("/pricing", h.pricing(l))
		g.GET("/guide", h.guide(l))
		g.GET("/blog", h.blog(l))
		g.GET("/terms", h.legal(l, "terms"))
		g.GET("/privacy", h.legal(l, "privacy"))
		g.GET("/contact", h.contact(l))
		g.POST("/contact", h.contactSubmit(l))
		g.GET("/enterprise", h.enterprise(l))
		g.POST("/enterprise", h.enterpriseSubmit(l))
	}

	r.GET("/robots.txt", h.robots)
	r.GET("/sitemap.xml", h.sitemap)
	r.NoRoute(middleware.LocaleRedirect(h.defaultLocale))
}

type alternate struct {
	Lang string
	Href string
}

// base assembles the view model shared by every page: locale, direction,
// current path for the language switcher, and hreflang alternates.
func (h *Site) base(c *gin.Context, l locale.Locale, page, titleKey string) gin.H {
	path := c.Request.URL.Path
	alts := make([]alternate, 0, len(locale.Supported))
	for _, a := range locale.Supported {
		alts = append(alts, alternate{Lang: a.String(), Href: h.baseURL + locale.SwitchPath(path, a)})
	}
	metrics.PageRenders.WithLabelValues("site", page).Inc()
	return gin.H{
		"Locale":     l,
		"Dir":        l.Dir(),
		"RTL":        l.RTL(),
		"Path":       path,
		"Page":       page,
		"Title":      i18n.T(l, titleKey),
		"Alternates": alts,
	}
}

func (h *Site) home(l locale.Locale) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "home", h.base(c, l, "home", "home.title"))
	}
}

func (h *Site) features(l locale.Locale) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "features", h.base(c, l, "features", "features.title"))
	}
}

func (h *Site) pricing(l locale.Locale) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "pricing", h.base(c, l, "pricing", "pricing.title"))
	}
}

func (h *Site) guide(l locale.Locale) gin.HandlerFunc {
	return func(c *gin.Context) {
		data := h.base(c, l, "guide", "guide.title")
		data["Body"] = markdown.Render(content.Guide(l))
		c.HTML(http.StatusOK, "guide", data)
	}
}

type blogCard struct {
	Title   string
	Excerpt string
}

// blog lists published posts for the locale. A backend failure renders the
// localized empty state rather than an error page.
func (h *Site) blog(l locale.Locale) gin.HandlerFunc {
	return func(c *gin.Context) {
		data := h.base(c, l, "blog", "blog.title")
		posts, err := h.api.PublicBlogPosts(c.Request.Context(), l.String())
		if err != nil {
			logger.Warnf("site: blog fetch failed: %v", err)
			posts = nil
		}
		cards := make([]blogCard, 0, len(posts))
		for _, p := range posts {
			cards = append(cards, blogCard{Title: p.Title, Excerpt: markdown.Excerpt(p.ContentMarkdown, 160)})
		}
		data["Posts"] = cards
		c.HTML(http.StatusOK, "blog", data)
	}
}

func (h *Site) legal(l locale.Locale, page string) gin.HandlerFunc {
	return func(c *gin.Context) {
		data := h.base(c, l, page, page+".title")
		data["TitleKey"] = page + ".title"
		data["BodyKey"] = page + ".body"
		c.HTML(http.StatusOK, "legal", data)
	}
}

func (h *Site) contact(l locale.Locale) gin.HandlerFunc {
	return func(c *gin.Context) {
		data := h.base(c, l, "contact", "contact.title")
		data["Sent"] = c.Query("sent") == "1"
		data["Failed"] = c.Query("failed") == "1"
		c.HTML(http.StatusOK, "contact", data)
	}
}

func (h *Site) contactSubmit(l locale.Locale) gin.HandlerFunc {
	return func(c *gin.Context) {
		msg := backend.ContactMessage{
			Kind:    "contact",
			Name:    c.PostForm("name"),
			Email:   c.PostForm("email"),
			Message: c.PostForm("message"),
		}
		h.forward(c, l, "contact", msg)
	}
}

func (h *Site) enterprise(l locale.Locale) gin.HandlerFunc {
	return func(c *gin.Context) {
		data := h.base(c, l, "enterprise", "enterprise.title")
		data["Sent"] = c.Query("sent") == "1"
		data["Failed"] = c.Query("failed") == "1"
		c.HTML(http.StatusOK, "enterprise", data)
	}
}

func (h *Site) enterpriseSubmit(l locale.Locale) gin.HandlerFunc {
	return func(c *gin.Context) {
		msg := backend.ContactMessage{
			Kind:     "enterprise",
			Name:     c.PostForm("company"),
			Email:    c.PostForm("email"),
			Message:  c.PostForm("message"),
			Company:  c.PostForm("company"),
			TeamSize: c.PostForm("size"),
		}
		h.forward(c, l, "enterprise", msg)
	}
}

// forward sends a form submission to the backend and redirects back with a
// flash flag. In development a backend failure still counts as sent so the
// site stays demoable without a live API.
func (h *Site) forward(c *gin.Context, l locale.Locale, page string, msg backend.ContactMessage) {
	target := "/" + l.String() + "/" + page
	if err := h.api.SendContact(c.Request.Context(), msg); err != nil {
		if h.production {
			logger.Errorf("site: %s form forward failed: %v", page, err)
			c.Redirect(http.StatusSeeOther, target+"?failed=1")
			return
		}
		logger.Warnf("site: %s form forward failed, simulating success: %v", page, err)
	}
	c.Redirect(http.StatusSeeOther, target+"?sent=1")
}
