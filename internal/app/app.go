package app

import (
	"context"
	"flag"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"geonest/internal/app/server"
	"geonest/internal/config"
	"geonest/internal/database"
	"geonest/internal/jobs/maintenance"
	"geonest/internal/publish"
)

const defaultBackendPort = 8082

func Run() error {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found. Falling back to system environment variables.")
	}

	log.SetLevel(log.DebugLevel)

	portFlag := flag.Int("port", defaultBackendPort, "Port for API server")
	productionFlag := flag.Bool("production", false, "Run in production mode")
	flag.Parse()

	config.SetProductionMode(*productionFlag)
	config.ReadSettings()

	port := resolvePort("PORT", "BACKEND_PORT", *portFlag)

	if _, err := database.SetupDB(); err != nil {
		return err
	}

	if err := database.LoadGeoLiteDatabase(); err != nil {
		log.Warn("GeoLite country database unavailable, suggestions disabled", "error", err)
	}

	// Published files live outside the database, rebuild them on boot.
	go publish.RegenerateAll()

	go maintenance.StartDraftCleanupRoutine(context.Background())

	return server.OpenRoutes(port)
}

func resolvePort(primaryEnv, legacyEnv string, fallback int) int {
	if port := readPort(primaryEnv); port != 0 {
		return port
	}
	if port := readPort(legacyEnv); port != 0 {
		return port
	}
	return fallback
}

func readPort(envKey string) int {
	raw := os.Getenv(envKey)
	if raw == "" {
		return 0
	}
	port, err := strconv.Atoi(raw)
	if err != nil || port == 0 {
		log.Warn("invalid port override", "env", envKey, "value", raw)
		return 0
	}
	return port
}
