package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/mux"

	"scribe-api/internal/config"
	"scribe-api/internal/domain/entities"
	Iservices "scribe-api/internal/domain/interfaces/services"
	"scribe-api/internal/infra/handlers"
	"scribe-api/internal/infra/logger"
	"scribe-api/internal/infra/provider"
	"scribe-api/internal/infra/relay"
	"scribe-api/internal/infra/repository"
	"scribe-api/internal/infra/routes"
	"scribe-api/internal/infra/services"
	"scribe-api/internal/infra/storage"
	"scribe-api/internal/middleware"
	client "scribe-api/internal/pkg"
)

const (
	maxUploadBytes = 20 * 1024 * 1024
	relayTimeout   = 5 * time.Minute
)

func main() {
	config.LoadEnv()

	ctx := context.Background()
	log := logger.NewLogger(ctx, true)

	mongoClient := client.MongoClient()
	transcriptDB := mongoClient.Database("Transcripts")

	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware(log))
	router.Use(middleware.CORSMiddleware(config.GetEnv("APP_URL")))

	transcriptRepo := repository.NewMongoRepository[entities.Transcript](transcriptDB)

	var transcriptSvc Iservices.ITranscriptService = services.NewTranscriptService(transcriptRepo, log)

	uploadStore, err := storage.NewUploadStore(config.GetEnvOr("UPLOAD_DIR", "./uploads"), maxUploadBytes)
	if err != nil {
		log.Fatal(fmt.Sprintf("Error initializing upload store: %v", err))
	}

	httpClient := http.Client{}

	tokenCache := provider.NewTokenCache()
	var identity provider.IIdentityProvider = provider.NewAuth0Provider(
		log,
		&httpClient,
		fmt.Sprintf("https://%s", config.GetEnv("AUTH_DOMAIN")),
		config.GetEnv("AUTH_MGMT_CLIENT_ID"),
		config.GetEnv("AUTH_MGMT_CLIENT_SECRET"),
		config.GetEnv("AUTH_AUDIENCE"),
		tokenCache,
	)

	finalizer := relay.NewFinalizer(log, transcriptSvc, uploadStore)
	transcriptionRelay := relay.NewRelay(log, &httpClient, config.GetEnv("TRANSCRIBER_URL"), relayTimeout, finalizer)

	transcriptHandlers := handlers.NewTranscriptHandlers(log, transcriptSvc)
	uploadHandlers := handlers.NewUploadHandlers(log, uploadStore, transcriptionRelay, maxUploadBytes)
	profileHandlers := handlers.NewProfileHandlers(log, identity)

	routes := routes.NewRoutes(
		router,
		transcriptHandlers,
		uploadHandlers,
		profileHandlers,
		middleware.AuthMiddleware(log, identity),
	)

	routes.Init()

	port := config.GetEnv("PORT")
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: router,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	go func() {
		log.Info(fmt.Sprintf("Server is running on port %s", port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(fmt.Sprintf("Error running HTTP server: %s", err))
			os.Exit(1)
		}
	}()

	<-stop
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(fmt.Sprintf("Server forced to shutdown: %v", err))
	} else {
		log.Info("Server stopped gracefully.")
	}
}
