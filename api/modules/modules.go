package modules

import (
	"fmt"
	"lolanalyzer/api/cache"
	"lolanalyzer/api/handlers"
	"lolanalyzer/api/middleware"
	"lolanalyzer/api/services"
	"lolanalyzer/pkg/repositories"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Module containing the necessary handlers.
type Module struct {
	Router        *gin.Engine
	PlayerHandler *handlers.PlayerHandler
	MemCache      *cache.MemCache
}

// ModuleDependencies are the shared resources of the handlers.
type ModuleDependencies struct {
	DB *gorm.DB
}

// Create a new module with all the necessary handlers initialized.
func NewModule(deps *ModuleDependencies) (*Module, error) {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), middleware.Metrics())

	memCache := cache.NewMemCache(time.Minute)

	playerService, err := services.NewPlayerService(&services.PlayerServiceDeps{
		Cache:      memCache,
		Repository: repositories.NewPlayerRepository(deps.DB),
	})
	if err != nil {
		memCache.Close()
		return nil, fmt.Errorf("couldn't start the player service: %v", err)
	}

	// Return the module with all handlers.
	return &Module{
		Router:        router,
		PlayerHandler: handlers.NewPlayerHandler(playerService),
		MemCache:      memCache,
	}, nil
}

// Close releases the resources owned by the module.
func (m *Module) Close() {
	m.MemCache.Close()
}
