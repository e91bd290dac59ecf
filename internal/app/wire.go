//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"interview-ai/internal/api/server"
	"interview-ai/internal/config"
)

// InitializeServer builds the API server and its dependencies. The cleanup
// function releases external connections and must run after Shutdown.
func InitializeServer(cfg *config.Config, logger *zap.Logger) (*server.Server, func(), error) {
	wire.Build(ServerSet)
	return nil, nil, nil
}
