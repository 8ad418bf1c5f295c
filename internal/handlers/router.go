// SPDX-License-Identifier: MIT
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/thatcatcamp/colorset/internal/middleware"
)

// RouterOptions configures NewRouter. A nil Limiter disables rate limiting.
type RouterOptions struct {
	Limiter   *middleware.RateLimiter
	Blocklist []string
	Allowlist []string
	Logger    zerolog.Logger
}

// NewRouter wires the palette routes and middleware into a gin engine.
func NewRouter(h *Handler, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(middleware.SecurityHeadersMiddleware())
	if len(opts.Blocklist) > 0 || len(opts.Allowlist) > 0 {
		r.Use(middleware.IPFilterMiddleware(opts.Blocklist, opts.Allowlist))
	}

	r.GET("/health", h.Health)

	p := r.Group("/palettes")
	if opts.Limiter != nil {
		p.Use(middleware.RateLimitMiddleware(opts.Limiter))
	}
	p.GET("", h.ListPalettes)
	p.GET("/search", h.SearchColors)
	p.GET("/:name", h.GetPalette)
	p.GET("/:name/colors/*color", h.ResolveColor)
	p.GET("/:name/theme.css", h.ThemeCSS)
	p.GET("/:name/swatches", h.Swatches)

	return r
}
