package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"encuentros/api/handlers"
	"encuentros/api/middleware"
	"encuentros/api/routes"
	"encuentros/config"
	"encuentros/db"
	"encuentros/services"

	"github.com/gin-gonic/gin"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	err := config.LoadConfig(configPath)
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}
	cfg := config.AppConfig
	log.Printf("Starting server with %s database on %s", cfg.Databases.Driver, cfg.ListenAddr())

	if err = db.ConnectDB(); err != nil {
		panic("Failed to connect to the database: " + err.Error())
	}

	// Redis and RabbitMQ are optional: without them counters are read from the
	// database and events are dropped.
	var counters services.PendingCounter = services.NopCounter{}
	if err := services.InitRedis(cfg.Redis); err != nil {
		log.Printf("Redis unavailable, running without cache: %v", err)
	} else {
		counters = services.NewCounterService(services.RedisClient)
		defer services.CloseRedis()
	}

	workers, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	var events services.EventPublisher = services.NopPublisher{}
	if cfg.RabbitMQ.URL != "" {
		publisher, err := services.NewRabbitPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Printf("RabbitMQ unavailable, friendship events are disabled: %v", err)
		} else {
			events = publisher
			defer publisher.Close()
		}
	}

	tx := db.NewTransactor(db.ORM)
	repo := db.NewRelationshipRepository()
	if services.RedisClient != nil && cfg.Friends.CounterReconcileInterval > 0 {
		reconciler := services.NewCounterReconciler(tx, repo, counters)
		go reconciler.Run(workers, cfg.Friends.CounterReconcileInterval)
	}
	directory := services.NewUserService(tx, services.RedisClient, cfg.Redis.ProfileTTL)

	friendHandler := handlers.NewFriendHandler(
		services.NewFriendRequestService(tx, repo, counters, events, cfg.Friends.ConflictRetries),
		services.NewNotificationService(tx, repo, directory, cfg.Friends.SymmetricAcceptedFeed),
		services.NewFriendService(tx, repo, directory, counters),
		services.NewSearchService(tx, repo, directory, cfg.Friends.AnnotateWorkers, cfg.Friends.SearchLimit),
	)

	if cfg.Logs.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.PrometheusMiddleware("encuentros"))
	router.Use(middleware.ActorMiddleware(cfg.Auth.JWTSecret))

	routes.PublicApi(router, friendHandler)
	routes.ServiceApi(router)

	server := &http.Server{
		Addr:           cfg.ListenAddr(),
		Handler:        router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		log.Printf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	stopWorkers()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server stopped")
}
