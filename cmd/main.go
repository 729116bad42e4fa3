package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Mandalorian7773/Collabie/config"
	"github.com/Mandalorian7773/Collabie/internal/entity"
	"github.com/Mandalorian7773/Collabie/internal/queue"
	"github.com/Mandalorian7773/Collabie/internal/relay"
	presence_repo "github.com/Mandalorian7773/Collabie/internal/repo/presence"
	"github.com/Mandalorian7773/Collabie/internal/routers"
	call_service "github.com/Mandalorian7773/Collabie/internal/use-case/call-case"
	message_service "github.com/Mandalorian7773/Collabie/internal/use-case/message-case"
	"github.com/Mandalorian7773/Collabie/internal/worker"
	"github.com/Mandalorian7773/Collabie/state"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// initialize the application
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appState, err := state.InitAppState(ctx, stop)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize application state")
	}
	defer appState.Close()

	if err := appState.DB.AutoMigrate(&entity.User{}, &entity.RefreshToken{}, &entity.Friend{}); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	producer := queue.NewProducer(appState.Redis)

	hub := relay.NewHub()
	log.Info().Msg("Relay hub initialized")

	rly := relay.NewRelay(
		hub,
		message_service.NewMessageService(appState),
		call_service.NewCallService(appState),
		presence_repo.NewPresenceRepo(appState),
		producer,
	)
	relayHandler := relay.NewHandler(rly, appState.JwtSecret.Public)

	workerPool := worker.NewWorkerPool(appState, 5)
	workerPool.Start(ctx)
	workerPool.StartDLQWorker(ctx)
	workerPool.StartDLQRetryConsumer(ctx)
	workerPool.StartScheduler(ctx, producer)

	r, err := routers.NewRouter(appState, hub, workerPool, relayHandler)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build router")
	}

	server := &http.Server{
		Addr:         config.Conf.App.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	// serve the application
	go func() {
		log.Info().Msgf("Starting server on http://localhost%s", config.Conf.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(fmt.Sprintf("ListenAndServe failed: %v", err))
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutdown initiated...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Printf("Graceful shutdown failed: %v\n", err)
	} else {
		fmt.Println("Server exited gracefully.")
	}

	hub.Close()
	workerPool.Wait()
}
