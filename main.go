package main

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/lamji/crud-api-mern-sub001/configs"
	"github.com/lamji/crud-api-mern-sub001/logging"
	"github.com/lamji/crud-api-mern-sub001/middlewares"
	"github.com/lamji/crud-api-mern-sub001/routes"
)

func main() {
	cfg := configs.LoadConfig()
	log := logging.GetSugaredLogger()
	defer log.Sync()

	// DB
	configs.ConnectionDB(cfg)
	if err := configs.SetupDatabase(); err != nil {
		log.Fatalf("setup indexes failed: %v", err)
	}

	if err := configs.SeedAccounts(cfg); err != nil {
		log.Fatalf("seed accounts failed: %v", err)
	}
	if err := configs.SeedProducts(); err != nil {
		log.Fatalf("seed products failed: %v", err)
	}

	// HTTP
	r := gin.Default()
	r.Use(middlewares.CORSMiddleware())
	routes.RegisterRoutes(r, cfg, log)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Infow("server running", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
