package handlers

import (
	"context"
	"delivery-dashboard-service/internal/adapters/live"
	"delivery-dashboard-service/internal/api/dto"
	"delivery-dashboard-service/internal/domain"
	"delivery-dashboard-service/internal/platform/metrics"
	"delivery-dashboard-service/internal/platform/obs"
	"delivery-dashboard-service/internal/services"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
)

// LiveHandler runs a websocket dashboard session: the client sends filter
// selections and receives a full dashboard frame for each one.
//
// A session handles one selection at a time, to completion, before it reads
// the next message.
type LiveHandler struct {
	Binder   *services.ViewBinder
	Upgrader websocket.Upgrader
}

func NewLiveHandler(binder *services.ViewBinder) *LiveHandler {
	return &LiveHandler{
		Binder: binder,
		Upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 16 * 1024,
		},
	}
}

type livePublisher struct {
	conn *live.Conn
}

func (p livePublisher) Publish(_ context.Context, d domain.Dashboard) error {
	res := newDashboardResponse(d)
	return p.conn.Send(dto.LiveFrame{Type: dto.LiveFrameDashboard, Data: &res})
}

func (h *LiveHandler) Serve(w http.ResponseWriter, r *http.Request) {
	if !allowGET(w, r) {
		return
	}

	ws, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error response.
		slog.WarnContext(r.Context(), "websocket upgrade failed", "req_id", obs.RequestID(r.Context()), "err", err)
		return
	}

	conn := live.NewConn(ws)
	defer conn.Close()

	metrics.LiveSessions.Inc()
	defer metrics.LiveSessions.Dec()

	ctx := r.Context()
	slog.InfoContext(ctx, "live session opened", "req_id", obs.RequestID(ctx), "remote", r.RemoteAddr)

	if !h.handle(ctx, conn, domain.SelectAll()) {
		return
	}

	for {
		var req dto.LiveRequest
		err := conn.Receive(&req)
		if err != nil && live.IsDisconnect(err) {
			slog.InfoContext(ctx, "live session closed", "req_id", obs.RequestID(ctx), "reason", err)
			return
		}
		if err != nil {
			if sendErr := conn.Send(dto.LiveFrame{Type: dto.LiveFrameError, Error: "invalid message"}); sendErr != nil {
				return
			}
			continue
		}

		if !h.handle(ctx, conn, domain.NewFilterSelection(req.VehicleType)) {
			return
		}
	}
}

// handle binds one selection. It reports false when the session should end.
func (h *LiveHandler) handle(ctx context.Context, conn *live.Conn, sel domain.FilterSelection) bool {
	err := h.Binder.Bind(ctx, sel, livePublisher{conn: conn})
	if err == nil {
		return true
	}

	// A failed recompute keeps the session; the client keeps its previous view.
	if sendErr := conn.Send(dto.LiveFrame{Type: dto.LiveFrameError, Error: "could not compute dashboard"}); sendErr != nil {
		slog.InfoContext(ctx, "live session closed", "req_id", obs.RequestID(ctx), "reason", sendErr)
		return false
	}
	return true
}
