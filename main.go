package main

import (
	"os"

	"gatherly-api/core/logger"
	"gatherly-api/core/server"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
