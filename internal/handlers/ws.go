// internal/handlers/ws.go
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"

	"github.com/pasapalabra/pasapalabra-live/internal/middleware"
	"github.com/pasapalabra/pasapalabra-live/internal/signaling"
)

// SignalingWSHandler upgrades the HTTP connection to WebSocket and runs the
// read and write pumps for one client. The connection handle is registered
// with the signaling server on its join-room message; a transport close is
// routed to HandleDisconnect, which is safe to hit for clients that already
// left or never joined.
func SignalingWSHandler(logger *logrus.Logger, srv *signaling.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{"signaling"},
			OriginPatterns: []string{"*"}, // Adjust in production
		})
		if err != nil {
			logger.Warnf("websocket accept error: %v", err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "handler exited")

		// Browser clients that negotiate no subprotocol are accepted as-is.
		if p := c.Subprotocol(); p != "" && p != "signaling" {
			c.Close(websocket.StatusPolicyViolation, "unsupported subprotocol")
			return
		}

		remoteAddr := r.RemoteAddr
		middleware.LogWebSocketConnect(logger, remoteAddr, r.URL.Path)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		conn := signaling.NewConn()
		go writePump(ctx, c, conn, logger)

		readErr := readPump(ctx, c, srv, conn, logger)

		srv.HandleDisconnect(conn)
		middleware.LogWebSocketDisconnect(logger, remoteAddr, r.URL.Path, readErr)
	}
}

// readPump reads frames until the transport closes. Malformed frames are
// logged and dropped individually; the connection stays open.
func readPump(ctx context.Context, c *websocket.Conn, srv *signaling.Server, conn *signaling.Conn, logger *logrus.Logger) error {
	for {
		typ, data, err := c.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				return nil
			}
			if strings.Contains(err.Error(), "context canceled") {
				return nil
			}
			return err
		}

		if typ != websocket.MessageText {
			logger.Warnf("received non-text message type %d, ignoring", typ)
			continue
		}

		msg, err := signaling.DecodeInbound(data)
		if err != nil {
			logger.Warnf("dropping frame from user %q: %v", conn.UserID, err)
			continue
		}

		srv.Handle(conn, msg)
	}
}

// writePump drains the connection's outbound queue onto the wire and keeps
// the transport alive with periodic pings. It exits when the queue is closed
// by the disconnect path or when a write fails.
func writePump(ctx context.Context, c *websocket.Conn, conn *signaling.Conn, logger *logrus.Logger) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case data, ok := <-conn.Outbound():
			if !ok {
				c.Close(websocket.StatusNormalClosure, "session ended")
				return
			}
			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := c.Write(writeCtx, websocket.MessageText, data)
			cancel()
			if err != nil {
				logger.Warnf("failed to write to websocket for user %q: %v", conn.UserID, err)
				return
			}
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
			err := c.Ping(pingCtx)
			cancel()
			if err != nil {
				logger.Warnf("ping failed for user %q, assuming disconnect: %v", conn.UserID, err)
				return
			}
		}
	}
}
