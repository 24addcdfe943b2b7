// Package httpapi exposes the document store over HTTP. Values are plain
// JSON; paths map one-to-one onto URL paths under /v1, and /watch upgrades
// to a websocket that pushes subtree snapshots.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cinescribe/cinescribe/internal/logging"
	"github.com/cinescribe/cinescribe/internal/server/store"
)

// Server holds the handlers around a store service.
type Server struct {
	store *store.Service
	log   logging.Logger
}

func NewServer(st *store.Service, log logging.Logger) *Server {
	return &Server{store: st, log: log}
}

// Router builds the gin engine with all store routes attached.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", s.health)

	v1 := router.Group("/v1")
	{
		v1.PUT("/*path", s.put)
		v1.GET("/*path", s.get)
		v1.DELETE("/*path", s.delete)
	}

	router.GET("/watch/*path", s.watch)

	return router
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func docPath(c *gin.Context) string {
	return strings.Trim(c.Param("path"), "/")
}

func (s *Server) put(c *gin.Context) {
	var value any
	if err := json.NewDecoder(c.Request.Body).Decode(&value); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	path := docPath(c)
	if err := s.store.Put(c.Request.Context(), path, value); err != nil {
		if errors.Is(err, store.ErrInvalidArgument) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s.log.Error(c.Request.Context(), "put failed", "path", path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "write failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) get(c *gin.Context) {
	path := docPath(c)
	value, err := s.store.Get(c.Request.Context(), path)
	if err != nil {
		if errors.Is(err, store.ErrInvalidArgument) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s.log.Error(c.Request.Context(), "get failed", "path", path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "read failed"})
		return
	}
	// a missing path serializes as JSON null
	c.JSON(http.StatusOK, value)
}

func (s *Server) delete(c *gin.Context) {
	path := docPath(c)
	if err := s.store.Delete(c.Request.Context(), path); err != nil {
		if errors.Is(err, store.ErrInvalidArgument) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s.log.Error(c.Request.Context(), "delete failed", "path", path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
