package handlers

import (
	"encoding/xml"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskmate/web-services/internal/locale"
)

// sitePages are the locale-prefixed paths the sitemap advertises.
var sitePages = []string{"", "/features", "/pricing", "/guide", "/blog", "/terms", "/privacy", "/contact", "/enterprise"}

type sitemapLink struct {
	XMLName xml.Name `xml:"xhtml:link"`
	Rel     string   `xml:"rel,attr"`
	Lang    string   `xml:"hreflang,attr"`
	Href    string   `xml:"href,attr"`
}

type sitemapURL struct {
	XMLName xml.Name `xml:"url"`
	Loc     string   `xml:"loc"`
	Links   []sitemapLink
}

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	NS      string   `xml:"xmlns,attr"`
	XHTML   string   `xml:"xmlns:xhtml,attr"`
	URLs    []sitemapURL
}

// sitemap lists every page once per locale, each entry carrying hreflang
// alternates for the other locales.
func (h *Site) sitemap(c *gin.Context) {
	set := urlSet{
		NS:    "http://www.sitemaps.org/schemas/sitemap/0.9",
		XHTML: "http://www.w3.org/1999/xhtml",
	}
	for _, page := range sitePages {
		for _, l := range locale.Supported {
			u := sitemapURL{Loc: h.baseURL + "/" + l.String() + page}
			for _, a := range locale.Supported {
				u.Links = append(u.Links, sitemapLink{
					Rel:  "alternate",
					Lang: a.String(),
					Href: h.baseURL + "/" + a.String() + page,
				})
			}
			set.URLs = append(set.URLs, u)
		}
	}
	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		c.String(http.StatusInternalServerError, "sitemap unavailable")
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", append([]byte(xml.Header), out...))
}

func (h *Site) robots(c *gin.Context) {
	c.String(http.StatusOK, "User-agent: *\nAllow: /\nSitemap: %s/sitemap.xml\n", h.baseURL)
}
