package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"

	"vantay/cmd/internal/config"
	"vantay/cmd/internal/domain/database"
	"vantay/cmd/internal/domain/database/repository"
	"vantay/cmd/internal/routes"
	"vantay/cmd/internal/server"
	"vantay/cmd/internal/service"
	"vantay/cmd/internal/utils/validators"
)

func main() {
	// .env is optional; the environment wins when both are set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warnf("failed to load .env file: %v", err)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}
	log.SetLevel(cfg.LogLvl())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Init database
	db, err := database.Open(ctx, database.Options{
		Driver:      cfg.Database.Driver,
		DSN:         cfg.Database.URL,
		MaxConns:    cfg.Database.MaxConns,
		MaxIdleTime: cfg.Database.MaxIdleTime,
		Debug:       cfg.LogLvl() == log.DEBUG,
	})
	if err != nil {
		log.Fatal("failed to initialize database: ", err)
	}

	validate := validators.New()

	// Getting repositories
	tx := repository.NewTransactor(db)
	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	apptRepo := repository.NewAppointmentRepository(db)
	healthRepo := repository.NewHealthRepository(db)

	// Getting services
	userService := service.NewUserService(userRepo, validate)
	clientService := service.NewClientService(clientRepo, validate)
	apptService := service.NewAppointmentService(apptRepo, clientRepo, tx, validate)
	healthService := service.NewHealthService(healthRepo, cfg.ServiceName)

	e := server.New(cfg, server.Handlers{
		Health:       routes.NewHealthDefault(healthService),
		Users:        routes.NewUserDefault(userService),
		Clients:      routes.NewClientDefault(clientService),
		Appointments: routes.NewAppointmentDefault(apptService),
	})

	if cfg.APIKey == "" {
		log.Warn("API_KEY is not set; protected routes will answer 500")
	}

	go func() {
		log.Infof("%s listening on http://%s", cfg.ServiceName, cfg.Addr())
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server stopped: ", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Errorf("failed to shut down server: %v", err)
	}
	if err := database.Close(db); err != nil {
		log.Errorf("failed to close database: %v", err)
	}
}
