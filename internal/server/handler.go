package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/pagegrade/internal/analyze"
)

// Client-facing messages. Internal error text is logged, never returned.
const (
	msgURLRequired = "URL is required"
	msgFetchFailed = "Failed to fetch page content"
	msgInternal    = "Internal server error"
)

type analyzeRequest struct {
	URL string `json:"url"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func analyzePage(rv Reviewer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req analyzeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Warn().Err(err).Msg("invalid analyze request body")
			c.JSON(http.StatusInternalServerError, errorResponse{Error: msgInternal})
			return
		}
		res, err := rv.Analyze(c.Request.Context(), req.URL)
		if err != nil {
			status, msg := mapError(err)
			log.Warn().Err(err).Str("url", req.URL).Int("status", status).Msg("analyze failed")
			c.JSON(status, errorResponse{Error: msg})
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

func mapError(err error) (int, string) {
	var fe *analyze.FetchError
	switch {
	case errors.Is(err, analyze.ErrMissingURL):
		return http.StatusBadRequest, msgURLRequired
	case errors.As(err, &fe):
		return http.StatusBadRequest, msgFetchFailed
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

func health(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := gin.H{"status": "ok"}
		if version != "" {
			body["version"] = version
		}
		c.JSON(http.StatusOK, body)
	}
}
