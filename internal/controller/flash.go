package controller

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

// Flash messages travel as query parameters on the redirect, so handlers
// stay stateless. kind is a bootstrap-ish category: success, warning,
// danger.
type flash struct {
	Message string
	Kind    string
}

func redirectWithFlash(c *gin.Context, target, kind, message string) {
	u, err := url.Parse(target)
	if err != nil {
		u = &url.URL{Path: "/"}
	}

	q := u.Query()
	q.Set("flash", message)
	q.Set("kind", kind)
	u.RawQuery = q.Encode()

	c.Redirect(http.StatusFound, u.String())
}

func flashFrom(c *gin.Context) flash {
	return flash{
		Message: c.Query("flash"),
		Kind:    c.DefaultQuery("kind", "success"),
	}
}

// backURL sends failed form submissions to the page they came from.
func backURL(c *gin.Context) string {
	if ref := c.GetHeader("Referer"); ref != "" {
		return ref
	}
	return "/"
}
