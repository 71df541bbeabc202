package websocket

import (
	"log/slog"
	"net/http"

	ws "github.com/coder/websocket"
)

// HandleWebSocket upgrades the request and streams change events to it.
// The optional property_id query parameter narrows the stream to one
// property. originPatterns empty means same-origin only.
func HandleWebSocket(hub *Hub, originPatterns []string, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := ws.Accept(w, r, &ws.AcceptOptions{
			OriginPatterns: originPatterns,
		})
		if err != nil {
			logger.Warn("websocket accept", "error", err, "remote", r.RemoteAddr)
			return
		}

		propertyID := r.URL.Query().Get("property_id")
		client := NewClient(hub, conn, propertyID)
		client.Run(r.Context())
		logger.Debug("websocket client disconnected", "property_id", propertyID, "clients", hub.ClientCount())
	}
}
