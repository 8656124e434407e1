package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parking_reservation/internal/api"
	"parking_reservation/internal/api/handler"
	"parking_reservation/internal/api/middleware"
	"parking_reservation/internal/config"
	"parking_reservation/internal/repository/postgresql"
	"parking_reservation/internal/service"

	log "github.com/sirupsen/logrus"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	cfg := config.Load()

	db, err := postgresql.NewDB(cfg)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}
	defer db.Close()
	log.Info("connected to database")

	userRepo := postgresql.NewPgUserRepository(db)
	spaceRepo := postgresql.NewPgSpaceRepository(db)
	resRepo := postgresql.NewPgReservationRepository(db)
	vehicleRepo := postgresql.NewPgVehicleRepository(db)
	incidentRepo := postgresql.NewPgIncidentRepository(db)
	txManager := postgresql.NewTxManager(db)

	wsManager := handler.NewWebSocketManager()
	go wsManager.Start()

	clock := service.NewRealClock()
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpirationHours)
	registryService := service.NewRegistryService(spaceRepo, wsManager)
	schedulerService := service.NewSchedulerService(spaceRepo, resRepo, txManager, clock, wsManager)
	trackerService := service.NewTrackerService(spaceRepo, resRepo, txManager, clock, wsManager)
	vehicleService := service.NewVehicleService(vehicleRepo)
	incidentService := service.NewIncidentService(incidentRepo, spaceRepo, clock)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	schedulerService.StartExpiryWorker(workerCtx, cfg.ExpirySweepInterval)

	router := api.SetupRouter(authService, registryService, schedulerService, trackerService,
		vehicleService, incidentService, clock, authMiddleware, wsManager)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		log.Infof("server listening on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	cancelWorker()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Info("server stopped")
}
