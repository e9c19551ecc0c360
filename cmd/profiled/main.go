// Command profiled runs the reference profile persistence and upload
// service.
package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/templata/go-profilegen/internal/server"
	"github.com/templata/go-profilegen/pkg/templates"
)

func main() {
	_ = godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	addr := envOr("PROFILED_ADDR", ":8085")
	dbPath := envOr("PROFILED_DB", "profiled.db")
	uploadDir := envOr("PROFILED_UPLOAD_DIR", "uploads")
	publicBase := envOr("PROFILED_PUBLIC_BASE", "http://localhost:8085")

	store, err := server.OpenStore(dbPath)
	if err != nil {
		log.Error("open store", "err", err)
		os.Exit(1)
	}

	srv, err := server.New(server.Config{
		Store:      store,
		Registry:   templates.Builtin(),
		UploadDir:  uploadDir,
		PublicBase: publicBase,
		Logger:     log,
	})
	if err != nil {
		log.Error("build server", "err", err)
		os.Exit(1)
	}

	if err := srv.Run(addr); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
