// Command seed creates the default space inventory (spaces 1-10 for cars,
// 11-20 for motorcycles). Safe to run more than once.
package main

import (
	"context"
	"time"

	"parking_reservation/internal/config"
	"parking_reservation/internal/repository/postgresql"
	"parking_reservation/internal/service"

	log "github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()

	db, err := postgresql.NewDB(cfg)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}
	defer db.Close()

	spaceRepo := postgresql.NewPgSpaceRepository(db)
	registry := service.NewRegistryService(spaceRepo, service.NewNoopNotifier())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	created, err := registry.SeedDefaultSpaces(ctx)
	if err != nil {
		log.Fatalf("seeding spaces: %v", err)
	}
	log.Infof("seed complete, %d space(s) created", created)
}
