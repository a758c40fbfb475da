package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/chargedcycleworks/service-intake/pkg/cli"
	"github.com/chargedcycleworks/service-intake/pkg/config"
	"github.com/chargedcycleworks/service-intake/pkg/utils"
)

func main() {
	utils.InitLogger(config.AppName)

	if err := godotenv.Load(); err != nil {
		utils.Logger.Debug("No .env file loaded")
	}

	// Initialize configuration
	cfg := config.LoadConfig()

	if err := cli.NewRootCommand(cfg).Execute(); err != nil {
		utils.Logger.Error(err)
		os.Exit(1)
	}
}
