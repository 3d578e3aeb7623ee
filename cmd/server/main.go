package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/eliman/taskdesk/internal/auth"
	"github.com/eliman/taskdesk/internal/config"
	"github.com/eliman/taskdesk/internal/engine"
	"github.com/eliman/taskdesk/internal/httpapi"
	"github.com/eliman/taskdesk/internal/notify"
	"github.com/eliman/taskdesk/internal/service"
	"github.com/eliman/taskdesk/internal/store"
)

func main() {
	// .env is optional; the environment itself still applies.
	if err := godotenv.Load(); err == nil {
		log.Println("loaded environment from .env")
	}

	configPath := flag.String("config", config.DefaultConfigPath(), "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if cfg.Auth.JWTSecret == "" {
		log.Fatal("no JWT secret configured: set auth.jwt_secret or TASKDESK_JWT_SECRET")
	}

	st, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		log.Fatalf("opening database %s: %v", cfg.Database.Path, err)
	}
	defer st.Close()

	dispatcher := notify.NewDispatcher(st)
	eng := engine.New(st, dispatcher)
	svc := service.New(st, dispatcher)
	authMgr := auth.NewManager(cfg.Auth.JWTSecret, cfg.TokenTTL())

	api := &httpapi.API{
		Store:         st,
		Engine:        eng,
		Service:       svc,
		Auth:          authMgr,
		DueSoonWindow: cfg.DueSoonWindow(),
	}
	r := httpapi.NewRouter(api)

	log.Printf("taskdesk listening on %s (db %s)", cfg.Server.Addr, cfg.Database.Path)
	if err := r.Run(cfg.Server.Addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
