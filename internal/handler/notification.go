package handler

import (
	"log/slog"
	"net/http"
	"time"

	docsysSvc "docintake/internal/domain/services/docsystem"
	"docintake/internal/handler/sse"
	"docintake/internal/httputil"
)

// NotificationHandler serves the workspace notification feed
type NotificationHandler struct {
	workspace docsysSvc.Workspace
	sseConfig *sse.Config
	logger    *slog.Logger
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(workspace docsysSvc.Workspace, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{
		workspace: workspace,
		sseConfig: sse.DefaultConfig(),
		logger:    logger,
	}
}

// ListNotifications returns the feed, newest first
// GET /api/notifications?unread=true
func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	items := h.workspace.Notifications(queryBool(r, "unread"))
	httputil.RespondJSON(w, http.StatusOK, items)
}

// MarkRead marks one notification read
// POST /api/notifications/{id}/read
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "Notification")
	if !ok {
		return
	}

	if err := h.workspace.MarkRead(id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// MarkAllRead marks the whole feed read
// POST /api/notifications/read-all
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	n := h.workspace.MarkAllRead()
	httputil.RespondJSON(w, http.StatusOK, map[string]int{"marked": n})
}

// StreamNotifications pushes notifications to the client as they are
// committed. The stream opens with an "unread" event carrying the current
// unread count.
// GET /api/notifications/stream
func (h *NotificationHandler) StreamNotifications(w http.ResponseWriter, r *http.Request) {
	events, cancel := h.workspace.SubscribeNotifications()
	defer cancel()

	// The server WriteTimeout would otherwise cut the stream.
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	stream, err := sse.NewWriter(w)
	if err != nil {
		httputil.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	unread := len(h.workspace.Notifications(true))
	if err := stream.WriteEvent("unread", "", map[string]int{"count": unread}); err != nil {
		return
	}
	h.logger.Debug("notification stream opened", "unread", unread)

	keepAlive := sse.NewTickerKeepAlive(h.sseConfig.KeepAliveInterval)
	dead := keepAlive.Start(stream, h.logger)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			h.logger.Debug("notification stream closed by client")
			return
		case <-dead:
			return
		case n, ok := <-events:
			if !ok {
				return
			}
			if err := stream.WriteEvent("notification", n.ID, n); err != nil {
				h.logger.Debug("notification stream write failed", "error", err)
				return
			}
		}
	}
}
