// Package httpapi exposes the workflow tracker over a JSON REST API.
// Handlers translate HTTP to service/engine calls and map the typed
// error taxonomy onto status codes. Role capability checks happen in
// route middleware; the transition edge set is never re-encoded here.
package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eliman/taskdesk/internal/auth"
	"github.com/eliman/taskdesk/internal/engine"
	"github.com/eliman/taskdesk/internal/service"
	"github.com/eliman/taskdesk/internal/store"
)

// API bundles the dependencies the handlers need.
type API struct {
	Store   store.Store
	Engine  *engine.Engine
	Service *service.Service
	Auth    *auth.Manager

	// DueSoonWindow is how far ahead the reminder scan looks.
	DueSoonWindow time.Duration
}

// writeError maps the typed failure taxonomy onto HTTP status codes so
// clients can tell "not allowed" from "missing" from "retry with fresh
// state".
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, engine.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
