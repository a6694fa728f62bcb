package main

import (
	"github.com/rooluDev/goboard/config"
	"github.com/rooluDev/goboard/models"
	"github.com/rooluDev/goboard/routes"
	"github.com/rooluDev/goboard/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(&models.Category{}, &models.Post{}, &models.Comment{}, &models.Attachment{})

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
