package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"lg/baselayer-api/internal/coach"
)

func main() {
	log.SetPrefix("lg/baselayer-api: ")
	log.SetFlags(0)

	// .env is optional in deployed environments where vars are set directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("[main] no .env loaded: %v", err)
	}

	cfg, err := loadConfig(os.Getenv("BASELAYER_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if cfg.DBURL == "" {
		fmt.Fprintln(os.Stderr, "DB_URL is not set")
		os.Exit(1)
	}

	pool := getDBPool(cfg.DBURL)
	defer pool.Close()

	var replier coach.Replier
	gemini, err := coach.NewGeminiClient(coach.GeminiConfig{
		APIKey:  cfg.GeminiAPIKey,
		BaseURL: cfg.GeminiBaseURL,
		Model:   cfg.Coach.Model,
	})
	if err != nil {
		log.Printf("[main] coach running offline: %v", err)
	} else {
		defer gemini.Close()
		replier = gemini
	}

	h := &Handler{
		db:    pool,
		coach: coach.New(replier),
		plan:  cfg.Plan,
	}

	router := gin.Default()
	router.SetTrustedProxies(nil)
	router.Use(cors.New(corsConfig(cfg.Server.AllowedOrigins)))
	h.registerRoutes(router)

	fmt.Printf("Starting gin app on %s...\n", cfg.Server.Addr)
	if err := router.Run(cfg.Server.Addr); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
