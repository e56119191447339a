package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":  "Welcome to CareFlow API",
		"version":  "1.0.0",
		"database": "MongoDB",
	})
}

// Health always answers 200; the database field carries the ping result.
func (h *HealthHandler) Health(c *gin.Context) {
	database := "connected"

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if h.db == nil || h.db.Ping(ctx) != nil {
		database = "unreachable"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"service":  "careflow-api",
		"database": database,
	})
}
