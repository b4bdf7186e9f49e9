package main

import (
	"os"

	"github.com/itcommunity/platform/internal/pkg/logger"
	"github.com/itcommunity/platform/internal/server"
)

// @title IT Community Platform API
// @version 1.0
// @description REST API for the IT community platform: project showcase, events, job board, suggestions and career guides

// @contact.name API Support
// @contact.email support@itcommunity.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:3001
// @BasePath /api/v1
// @schemes http

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully")
}
