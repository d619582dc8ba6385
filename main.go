package main

import (
	"bandos-api/core/logger"
	"bandos-api/core/server"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
