package main

import (
	"context"
	"log"

	"notekeeper-be/internal/bootstrap"
	"notekeeper-be/internal/config"
	"notekeeper-be/internal/model"
	"notekeeper-be/internal/server"
	"notekeeper-be/internal/tracer"
	"notekeeper-be/pkg/database"
)

func main() {
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()
	if cfg.Auth.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.Note{}); err != nil {
		log.Panicf("Unable to migrate notes table: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	srv := server.New(cfg, container)

	log.Fatal(srv.Run())
}
