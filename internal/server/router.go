// Package server exposes the page analyzer over HTTP with gin.
package server

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/hyperifyio/pagegrade/internal/review"
)

// Reviewer analyzes a single landing page URL.
type Reviewer interface {
	Analyze(ctx context.Context, url string) (review.Result, error)
}

// Options tunes the router.
type Options struct {
	// RatePerSec and Burst configure the per-client token bucket on the API
	// group. A zero rate disables limiting.
	RatePerSec float64
	Burst      int
	// Release switches gin to release mode.
	Release bool
	// Version is reported by the health endpoint when set.
	Version string
}

// NewRouter returns a gin engine with the analyze and health routes.
//
//	Global: Recovery → request logger
//	API:    RateLimit
func NewRouter(rv Reviewer, opts Options) *gin.Engine {
	if opts.Release {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger())

	r.GET("/healthz", health(opts.Version))

	api := r.Group("/api")
	if opts.RatePerSec > 0 {
		api.Use(RateLimit(opts.RatePerSec, opts.Burst))
	}
	api.POST("/analyze", analyzePage(rv))
	return r
}
