package handlers

import (
	"errors"
	"lolanalyzer/api/dto"
	"lolanalyzer/api/filters"
	"lolanalyzer/api/services"
	"lolanalyzer/pkg/repositories"
	"net/http"

	"github.com/gin-gonic/gin"
)

// PlayerHandler is the handler for the player endpoints.
type PlayerHandler struct {
	playerService *services.PlayerService
}

// NewPlayerHandler creates a new instance of the player handler.
func NewPlayerHandler(service *services.PlayerService) *PlayerHandler {
	return &PlayerHandler{
		playerService: service,
	}
}

// ListPlayers handles the player listing.
func (h *PlayerHandler) ListPlayers(c *gin.Context) {
	var qp filters.PlayerListParams
	if err := c.ShouldBindQuery(&qp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.playerService.ListPlayers(c.Request.Context(), qp.AsFilter())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(result), "result": result})
}

// GetPlayer handles the request of a single player.
func (h *PlayerHandler) GetPlayer(c *gin.Context) {
	result, err := h.playerService.GetPlayer(c.Request.Context(), c.Param("puuid"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// CreatePlayer handles the creation or update of a player.
func (h *PlayerHandler) CreatePlayer(c *gin.Context) {
	var body dto.CreatePlayer
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.playerService.CreatePlayer(c.Request.Context(), &body)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"result": result})
}

// Map the service errors to a status code.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repositories.ErrPlayerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
