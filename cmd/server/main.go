package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mkhaliddev/foodrush/internal/cache"
	"github.com/mkhaliddev/foodrush/internal/config"
	"github.com/mkhaliddev/foodrush/internal/es"
	"github.com/mkhaliddev/foodrush/internal/handlers"
	"github.com/mkhaliddev/foodrush/internal/jobs"
	"github.com/mkhaliddev/foodrush/internal/logging"
	"github.com/mkhaliddev/foodrush/internal/middleware/loggingmw"
	"github.com/mkhaliddev/foodrush/internal/mykafka"
	"github.com/mkhaliddev/foodrush/internal/service/lifecycle"
	"github.com/mkhaliddev/foodrush/internal/service/qr"
	"github.com/mkhaliddev/foodrush/internal/service/token"
	httpserver "github.com/mkhaliddev/foodrush/internal/transport/http"
	"github.com/mkhaliddev/foodrush/internal/uploads"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}

	prod := mykafka.NewProducer(configuration.KAFKA_ADDRESS)

	var searchClient *elasticsearch.Client
	if configuration.ES_URL != "" {
		searchClient, err = es.NewClient(configuration)
		if err != nil {
			log.Printf("elasticsearch unavailable, search disabled: %v", err)
			searchClient = nil
		}
	}

	foodCache := cache.NewFoodCache(configuration.REDIS_ADDR, 5*time.Minute)

	files, err := uploads.NewStorage(configuration.UPLOAD_DIR, configuration.PUBLIC_BASE_URL)
	if err != nil {
		log.Fatalf("upload storage init error: %v", err)
	}

	svc := lifecycle.NewService(db)

	tokens := &token.Service{
		DB:            db,
		JWTSecret:     []byte(configuration.JWT_SECRET),
		RefreshSecret: []byte(configuration.REFRESH_SECRET),
	}
	timeout := configuration.RequestTimeout

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), middleware.CORS())
	e.Use(loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		DB:          db,
		AuthHandler: &handlers.AuthHandler{DB: db, Tokens: tokens, Producer: prod, Timeout: timeout},
		FoodHandler: &handlers.FoodHandler{DB: db, ES: searchClient, Index: "food", Cache: foodCache, Files: files, Producer: prod, Timeout: timeout},
		OrderHandler: &handlers.OrderHandler{
			Svc:      svc,
			Producer: prod,
			QR:       qr.Generator{BaseURL: configuration.PUBLIC_BASE_URL},
			Timeout:  timeout,
		},
		SearchHandler: &handlers.SearchHandler{ES: searchClient, Index: "food"},
		UploadDir:     configuration.UPLOAD_DIR,
	}

	httpserver.Register(e, &deps)

	jobManager := jobs.NewJobManager(db, files, logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("jobs start error: %v", err)
	}

	srv := &http.Server{
		Addr:         ":" + configuration.HTTP_PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	jobManager.StopAll()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}
	if err := foodCache.Close(); err != nil {
		log.Printf("redis close error: %v", err)
	}

	log.Println("shutdown complete")
}
