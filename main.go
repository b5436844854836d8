package main

import (
	"log"
	"net/http"

	"stickyboard/config"
	"stickyboard/config/database"
	"stickyboard/pkg/logger"
	"stickyboard/router"
	"stickyboard/socket"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables from OS")
	}

	logger.Init()
	defer logger.Log.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Sugar.Fatalf("Invalid configuration: %v", err)
	}

	db := database.Connect(cfg)
	defer db.Close()

	hub := socket.NewHub()
	go hub.Run()

	handler := router.Setup(cfg, db, hub)

	logger.Sugar.Infof("Sticky board backend listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		logger.Sugar.Fatalf("Server error: %v", err)
	}
}
