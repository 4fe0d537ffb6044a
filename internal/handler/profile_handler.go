/**
* Name: 			profile_handler.go
* Description: 		Gin HTTP handlers for the user profile
* Workflow: 		load (defaults + stored record), save, reset, defaults
 */
package handler

import (
	"errors"
	"net/http"

	"ProfileStore_Service/internal/auth"
	"ProfileStore_Service/internal/middleware"
	"ProfileStore_Service/internal/profile"
	"ProfileStore_Service/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error string `json:"error" example:"Failed to load profile"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

type ProfileHandler struct {
	kv      storage.KV
	baseKey string
	hub     *Hub
	// nil when auth is off
	issuer  *auth.Issuer
	writes  *keyLocks
	log     *zap.Logger
}

func NewProfileHandler(kv storage.KV, baseKey string, hub *Hub, issuer *auth.Issuer, log *zap.Logger) *ProfileHandler {
	if baseKey == "" {
		baseKey = profile.DefaultKey
	}
	if hub == nil {
		hub = NewHub()
	}
	return &ProfileHandler{
		kv:      kv,
		baseKey: baseKey,
		hub:     hub,
		issuer:  issuer,
		writes:  newKeyLocks(),
		log:     log.With(zap.String("module", "handler")),
	}
}

func (h *ProfileHandler) store(username string) *profile.Store {
	return profile.NewStore(h.kv, profile.KeyFor(h.baseKey, username))
}

// GetProfile godoc
// @Summary      Load profile
// @Description  Returns the default profile overlaid by the saved one.
// @Tags         Profile
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} models.UserState
// @Failure      401 {object} handler.ErrorResponse "missing or invalid token"
// @Failure      500 {object} handler.ErrorResponse
// @Router       /api/profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	store := h.store(c.GetString(middleware.UsernameKey))

	state, err := store.Load(c.Request.Context())
	if err != nil {
		h.log.Error("failed to load profile", zap.String("key", store.Key()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to load profile"})
		return
	}
	c.JSON(http.StatusOK, state)
}

// SaveProfile godoc
// @Summary      Save profile
// @Description  Stores the request body verbatim. It must be a JSON object; keys it
// @Description  leaves out keep their defaults on the next load.
// @Tags         Profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body models.UserState true "profile to save"
// @Success      200 {object} models.UserState "profile as the next load returns it"
// @Failure      400 {object} handler.ErrorResponse
// @Failure      401 {object} handler.ErrorResponse "missing or invalid token"
// @Failure      500 {object} handler.ErrorResponse
// @Router       /api/profile [put]
func (h *ProfileHandler) SaveProfile(c *gin.Context) {
	rawData, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to read request body"})
		return
	}

	store := h.store(c.GetString(middleware.UsernameKey))
	unlock := h.writes.lock(store.Key())
	defer unlock()

	if _, err := store.SaveRaw(c.Request.Context(), rawData); err != nil {
		if errors.Is(err, profile.ErrInvalidRecord) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid profile: " + err.Error()})
			return
		}
		h.log.Error("failed to save profile", zap.String("key", store.Key()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to save profile"})
		return
	}

	state, err := store.Load(c.Request.Context())
	if err != nil {
		h.log.Error("failed to reload saved profile", zap.String("key", store.Key()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to load profile"})
		return
	}
	h.hub.Publish(store.Key(), state)
	c.JSON(http.StatusOK, state)
}

// ResetProfile godoc
// @Summary      Reset profile
// @Description  Deletes the saved profile; the defaults apply again.
// @Tags         Profile
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} models.UserState
// @Failure      401 {object} handler.ErrorResponse "missing or invalid token"
// @Failure      500 {object} handler.ErrorResponse
// @Router       /api/profile [delete]
func (h *ProfileHandler) ResetProfile(c *gin.Context) {
	store := h.store(c.GetString(middleware.UsernameKey))
	unlock := h.writes.lock(store.Key())
	defer unlock()

	if err := store.Reset(c.Request.Context()); err != nil {
		h.log.Error("failed to reset profile", zap.String("key", store.Key()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to reset profile"})
		return
	}
	state := profile.DefaultState()
	h.hub.Publish(store.Key(), state)
	c.JSON(http.StatusOK, state)
}

// DefaultProfile godoc
// @Summary      Default profile
// @Tags         Profile
// @Produce      json
// @Success      200 {object} models.UserState
// @Router       /api/profile/default [get]
func (h *ProfileHandler) DefaultProfile(c *gin.Context) {
	c.JSON(http.StatusOK, profile.DefaultState())
}

// Health godoc
// @Summary      Liveness check
// @Tags         System
// @Produce      json
// @Success      200 {object} handler.HealthResponse
// @Router       /healthz [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}
