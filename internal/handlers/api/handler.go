package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/KirkDiggler/spell-duel/internal/domain/battle"
	dnderr "github.com/KirkDiggler/spell-duel/internal/errors"
	"github.com/KirkDiggler/spell-duel/internal/logging"
	battleService "github.com/KirkDiggler/spell-duel/internal/services/battle"
	"github.com/gin-gonic/gin"
)

const (
	// SessionHeader selects the battle session; the session query param is the fallback
	SessionHeader  = "X-Session-ID"
	SessionQuery   = "session"
	DefaultSession = "default"

	corsAllowMethods = "GET,POST,DELETE,OPTIONS"
	corsAllowHeaders = "Content-Type," + SessionHeader
)

// Handler groups the battle HTTP handlers
type Handler struct {
	service battleService.Service
}

// RouterConfig holds configuration for the HTTP router
type RouterConfig struct {
	Service    battleService.Service
	CORSOrigin string // Defaults to *
}

// NewRouter builds the gin engine serving the battle API
func NewRouter(cfg *RouterConfig) *gin.Engine {
	if cfg == nil || cfg.Service == nil {
		panic("battle service is required")
	}

	origin := cfg.CORSOrigin
	if origin == "" {
		origin = "*"
	}

	h := &Handler{service: cfg.Service}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(), cors(origin))

	router.GET("/health", h.Health)

	apiRoutes := router.Group("/api")
	{
		apiRoutes.GET("/state", h.GetState)
		apiRoutes.POST("/spell", h.CastSpell)
		apiRoutes.POST("/enemy_turn", h.EnemyTurn)
		apiRoutes.POST("/reset", h.Reset)
		apiRoutes.GET("/actions", h.Actions)
		apiRoutes.GET("/history", h.History)

		apiRoutes.GET("/sessions", h.ListSessions)
		apiRoutes.POST("/sessions", h.CreateSession)
		apiRoutes.DELETE("/sessions/:id", h.DeleteSession)
	}

	return router
}

// Health reports liveness
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetState returns the current snapshot without changing it
func (h *Handler) GetState(c *gin.Context) {
	state, err := h.service.GetState(c.Request.Context(), sessionID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewSnapshot(state))
}

// CastSpell applies one player action
func (h *Handler) CastSpell(c *gin.Context) {
	var req SpellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, dnderr.InvalidArgument("body must be {\"spell\": \"<action id>\"}"))
		return
	}

	state, err := h.service.ApplyPlayerAction(c.Request.Context(), sessionID(c), battle.ActionID(strings.TrimSpace(req.Spell)))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewSnapshot(state))
}

// EnemyTurn lets the enemy act
func (h *Handler) EnemyTurn(c *gin.Context) {
	state, err := h.service.ApplyEnemyTurn(c.Request.Context(), sessionID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewSnapshot(state))
}

// Reset restarts the battle
func (h *Handler) Reset(c *gin.Context) {
	state, err := h.service.Reset(c.Request.Context(), sessionID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewSnapshot(state))
}

// Actions lists the player action catalog
func (h *Handler) Actions(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Catalog())
}

// History lists recent finished battles
func (h *Handler) History(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			h.writeError(c, dnderr.InvalidArgument("limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}

	outcomes, err := h.service.History(c.Request.Context(), limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, outcomes)
}

// ListSessions returns a snapshot of every stored battle
func (h *Handler) ListSessions(c *gin.Context) {
	states, err := h.service.ListSessions(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	out := make([]*Snapshot, 0, len(states))
	for _, s := range states {
		out = append(out, NewSnapshot(s))
	}
	c.JSON(http.StatusOK, out)
}

// CreateSession starts a battle under a new id
func (h *Handler) CreateSession(c *gin.Context) {
	state, err := h.service.CreateSession(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, SessionResponse{SessionID: state.ID, State: NewSnapshot(state)})
}

// DeleteSession removes a battle
func (h *Handler) DeleteSession(c *gin.Context) {
	if err := h.service.DeleteSession(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	code := dnderr.GetCode(err)
	status := statusFor(code)
	resp := ErrorResponse{Error: string(code), Message: err.Error()}

	switch {
	case status >= http.StatusInternalServerError:
		logging.Error("request failed", err, logging.Fields{
			"path":       c.FullPath(),
			"session_id": sessionID(c),
		})
		resp.Error = string(dnderr.CodeInternal)
		resp.Message = "internal error"
		if code == dnderr.CodeUnavailable {
			resp.Error = string(code)
			resp.Message = "battle storage is unavailable"
		}
	case code == dnderr.CodeInvalidTurn:
		// Peek so a rejected request never creates a session
		if state, stateErr := h.service.Peek(c.Request.Context(), sessionID(c)); stateErr == nil {
			resp.State = NewSnapshot(state)
		}
	}

	c.AbortWithStatusJSON(status, resp)
}

func statusFor(code dnderr.Code) int {
	switch code {
	case dnderr.CodeInvalidTurn, dnderr.CodeAlreadyExists:
		return http.StatusConflict
	case dnderr.CodeUnknownAction, dnderr.CodeInvalidArgument:
		return http.StatusBadRequest
	case dnderr.CodeNotFound:
		return http.StatusNotFound
	case dnderr.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func sessionID(c *gin.Context) string {
	if id := strings.TrimSpace(c.GetHeader(SessionHeader)); id != "" {
		return id
	}
	if id := strings.TrimSpace(c.Query(SessionQuery)); id != "" {
		return id
	}
	return DefaultSession
}

// cors mirrors the single configured origin on every response
func cors(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", corsAllowMethods)
		c.Header("Access-Control-Allow-Headers", corsAllowHeaders)
		c.Header("Access-Control-Max-Age", "600")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logging.Debug("http request", logging.Fields{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"session_id":  c.GetHeader(SessionHeader),
		})
	}
}
