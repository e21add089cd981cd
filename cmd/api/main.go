package main

import (
	"context"
	"log"

	"github.com/Apurer/user-service/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("user API exited: %v", err)
	}
}
