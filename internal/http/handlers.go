package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tabhoarder/backend/internal/batch"
	"github.com/tabhoarder/backend/internal/bridge"
	"github.com/tabhoarder/backend/internal/domain/archive"
	"github.com/tabhoarder/backend/internal/session"
	"github.com/tabhoarder/backend/internal/ws"
)

// Handlers contains all HTTP handlers.
type Handlers struct {
	manager *session.Manager
	hub     *ws.Hub
}

// NewHandlers creates a new handler set.
func NewHandlers(manager *session.Manager, hub *ws.Hub) *Handlers {
	return &Handlers{manager: manager, hub: hub}
}

// Root handles the basic liveness check.
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "tabhoarder-backend",
	})
}

// Health handles the detailed health check.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":           "healthy",
		"window_connected": h.hub.Connected(),
		"sessions_stored":  len(h.manager.Sessions()),
	})
}

// ListTabs returns the connected window's current tab set.
func (h *Handlers) ListTabs(c *gin.Context) {
	tabs, err := h.manager.Snapshot(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tabs": tabs, "count": len(tabs)})
}

// DomainStats returns the ten most frequent apex domains.
func (h *Handlers) DomainStats(c *gin.Context) {
	stats, err := h.manager.DomainStats(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"domains": stats})
}

// SortPreview returns the target id order without applying it.
func (h *Handlers) SortPreview(c *gin.Context) {
	order, err := h.manager.SortPreview(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// ApplySort reorders the window by apex domain.
func (h *Handlers) ApplySort(c *gin.Context) {
	moved, err := h.manager.ApplySort(c.Request.Context(), h.progress("sort"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"moved": moved})
}

// ListDuplicates returns the tab ids a deduplicate would close.
func (h *Handlers) ListDuplicates(c *gin.Context) {
	dupes, err := h.manager.Duplicates(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"duplicates": dupes, "count": len(dupes)})
}

// Deduplicate closes later duplicates of each URL.
func (h *Handlers) Deduplicate(c *gin.Context) {
	closed, err := h.manager.Deduplicate(c.Request.Context(), h.progress("dedup"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"closed": closed})
}

type collapseRequest struct {
	Name string `json:"name"`
}

// Collapse archives the window's tabs as a session and closes them.
func (h *Handlers) Collapse(c *gin.Context) {
	// Body is optional; an absent name gets a timestamped default.
	var req collapseRequest
	_ = c.ShouldBindJSON(&req)
	if req.Name == "" {
		req.Name = "Session " + time.Now().Format("2006-01-02 15:04")
	}
	if err := validateName(req.Name); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := h.manager.Collapse(c.Request.Context(), req.Name, h.progress("collapse"))
	if err != nil {
		// The session may have been archived even when closing stopped
		// short; include it so the client can still show it.
		var partial *batch.PartialError
		if errors.As(err, &partial) {
			c.JSON(http.StatusBadGateway, gin.H{
				"error":     err.Error(),
				"processed": partial.Processed,
				"total":     partial.Total,
				"session":   sess,
			})
			return
		}
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": sess})
}

// RestoreSession recreates a session's tabs in the window.
func (h *Handlers) RestoreSession(c *gin.Context) {
	created, err := h.manager.Restore(c.Request.Context(), c.Param("id"), h.progress("restore"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"created": created})
}

// ListSessions returns session summaries in storage order.
func (h *Handlers) ListSessions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sessions": h.manager.Sessions()})
}

// SearchSessions matches session names case-insensitively.
func (h *Handlers) SearchSessions(c *gin.Context) {
	matches := h.manager.Search(c.Query("q"))
	c.JSON(http.StatusOK, gin.H{"sessions": matches})
}

// GetSession returns one full session.
func (h *Handlers) GetSession(c *gin.Context) {
	sess, err := h.manager.Session(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": sess})
}

type renameRequest struct {
	Name string `json:"name" binding:"required"`
}

// RenameSession replaces a session's name.
func (h *Handlers) RenameSession(c *gin.Context) {
	var req renameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	if err := validateName(req.Name); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.manager.Rename(c.Param("id"), req.Name); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteSession removes a session permanently.
func (h *Handlers) DeleteSession(c *gin.Context) {
	if err := h.manager.Delete(c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ExportSessions serves the serialized archive as a download.
// ?format=gzip compresses it.
func (h *Handlers) ExportSessions(c *gin.Context) {
	stamp := time.Now().Format("2006-01-02")
	if c.Query("format") == "gzip" {
		data, err := h.manager.ExportGzip()
		if err != nil {
			h.fail(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=tabhoarder-sessions-%s.json.gz", stamp))
		c.Data(http.StatusOK, "application/gzip", data)
		return
	}

	data, err := h.manager.Export()
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=tabhoarder-sessions-%s.json", stamp))
	c.Data(http.StatusOK, "application/json", data)
}

// StorageUsage reports persistence consumption for display.
func (h *Handlers) StorageUsage(c *gin.Context) {
	usage, err := h.manager.Usage()
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, usage)
}

// progress forwards batch progress frames to the connected window.
func (h *Handlers) progress(op string) session.Progress {
	return func(percent int) {
		h.hub.NotifyProgress(op, percent)
	}
}

// fail maps domain errors onto HTTP statuses.
func (h *Handlers) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, archive.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
	case errors.Is(err, bridge.ErrNoWindow):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no browser window connected"})
	default:
		var partial *batch.PartialError
		if errors.As(err, &partial) {
			c.JSON(http.StatusBadGateway, gin.H{
				"error":     err.Error(),
				"processed": partial.Processed,
				"total":     partial.Total,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
