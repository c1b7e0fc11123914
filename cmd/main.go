package main

import (
	"github.com/raidcore/rtp/internal/cobra"
	"github.com/raidcore/rtp/internal/config"
	"github.com/raidcore/rtp/internal/logger"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := logger.InitLogger(config.LogLevelInfo); err != nil {
		logrus.Fatalf("Error initializing Logger: %v", err)
	}

	if err := cobra.ExecuteCmd(); err != nil {
		logrus.Fatalf("Error executing command: %v", err)
	}
}
