package routes

import (
	"lolanalyzer/api/handlers"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	Engine *gin.Engine
	api    *gin.RouterGroup
}

func NewRouter(engine *gin.Engine) *Router {
	return &Router{
		api:    engine.Group("/api/v1"),
		Engine: engine,
	}
}

func (r *Router) SetupRoutes(handlerList ...any) {
	for _, h := range handlerList {
		switch handler := h.(type) {
		case *handlers.PlayerHandler:
			r.registerPlayerHandler(handler)
		}
	}

	r.Engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Register the player handler.
func (r *Router) registerPlayerHandler(handler *handlers.PlayerHandler) {
	players := r.api.Group("/players")
	{
		players.GET("", handler.ListPlayers)
		players.GET("/:puuid", handler.GetPlayer)
		players.POST("", handler.CreatePlayer)
	}
}
