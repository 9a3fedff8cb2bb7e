package main

import (
	"context"
	"log"

	"github.com/trannm-ct/channel-chat/internal/app"
	"github.com/trannm-ct/channel-chat/internal/server"
)

func main() {
	log.Println("Starting channel-chat service...")

	application := app.Invoke(server.StartServer)
	if err := application.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	<-application.Done()
	log.Println("Application stopped")
}
