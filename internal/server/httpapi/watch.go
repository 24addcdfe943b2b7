package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// watch upgrades the connection and streams JSON snapshots of the subtree
// at the requested path: the current snapshot first, then one after every
// overlapping change. The subscription ends when the client disconnects.
func (s *Server) watch(c *gin.Context) {
	path := docPath(c)

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	ch, err := s.store.Watch(ctx, path)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warn(ctx, "websocket upgrade failed", "path", path, "error", err)
		return
	}
	defer conn.Close()

	// read pump: the client sends nothing meaningful, but a read error is
	// how we learn the peer went away
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	for snapshot := range ch {
		if err := conn.WriteJSON(snapshot); err != nil {
			s.log.Debug(ctx, "watch write ended", "path", path, "error", err)
			return
		}
	}
}
