package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/authgate/authgate/internal/audit"
)

// auditBufferSize is the capacity of the audit event channel. Events
// beyond this backlog are dropped rather than blocking request handlers.
const auditBufferSize = 256

// auditWriteTimeout bounds each audit insert so a stalled database
// cannot wedge the drain goroutine.
const auditWriteTimeout = 5 * time.Second

// auditEvent is an auth event queued for asynchronous recording.
type auditEvent struct {
	Action string
	UserID string
	Email  string
	Path   string
}

// auditLog queues an audit event for asynchronous persistence.
//
// The write happens off the request path: a full buffer or a missing
// audit repository drops the event with a log line instead of delaying
// or failing the response.
func (s *Server) auditLog(ctx context.Context, event auditEvent) {
	if s.auditCh == nil {
		return
	}

	select {
	case s.auditCh <- event:
	default:
		s.logger.Warn("audit buffer full, dropping event",
			"action", event.Action,
			"request_id", ctx.Value(ctxKeyRequestID),
		)
	}
}

// drainAuditLog persists queued audit events until the context is cancelled.
func (s *Server) drainAuditLog(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-s.auditCh:
			details := map[string]any{}
			if event.Email != "" {
				details["email"] = event.Email
			}
			if event.Path != "" {
				details["path"] = event.Path
			}
			if len(details) == 0 {
				details = nil
			}

			writeCtx, cancel := context.WithTimeout(context.Background(), auditWriteTimeout)
			err := s.audit.Create(writeCtx, &audit.Entry{
				Action:  event.Action,
				UserID:  event.UserID,
				Details: details,
			})
			cancel()
			if err != nil {
				s.logger.Error("writing audit entry", "error", err, "action", event.Action)
			}
		}
	}
}

// handleListAuditLogs returns the audit trail, newest first. Admin only.
func (s *Server) handleListAuditLogs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := audit.Filter{
		Action: query.Get("action"),
		UserID: query.Get("user_id"),
	}
	if v := query.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := query.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}

	result, err := s.audit.List(r.Context(), filter)
	if err != nil {
		s.logger.Error("listing audit entries", "error", err)
		writeInternalError(w)
		return
	}

	writeEnvelope(w, http.StatusOK, Envelope{
		Success:    true,
		HTTPStatus: http.StatusText(http.StatusOK),
		Message:    "Audit trail",
		DataList:   result.Entries,
		Meta: map[string]any{
			"total":  result.Total,
			"limit":  result.Limit,
			"offset": result.Offset,
		},
	})
}
