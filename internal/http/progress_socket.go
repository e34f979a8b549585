package httpapi

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ProgressSocket streams the caller's stored progress updates. Browsers cannot set
// headers on a websocket handshake, so the token travels in the query string.
func (s *Server) ProgressSocket(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeUnauthorized(w, "Not authenticated")
		return
	}
	user, err := s.Auth.Resolve(r.Context(), token)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.Logger.Debug("progress socket upgrade failed", zap.Error(err))
		return
	}
	s.Hub.Add(user.ID, conn)
	defer func() {
		s.Hub.Remove(user.ID, conn)
		_ = conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
