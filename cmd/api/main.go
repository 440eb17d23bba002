package main

import (
	"context"
	"log"

	"whispr-server/config"
	"whispr-server/internal/handler"
	"whispr-server/internal/redis"
	"whispr-server/internal/server"
	"whispr-server/internal/services"
	"whispr-server/internal/websocket"
	"whispr-server/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	mode := logger.DevelopmentMode
	if cfg.AppMode == server.ReleaseMode {
		mode = logger.ProductionMode
	}
	l := logger.New(mode)
	logger.SetGlobalLogger(l)

	client := redis.NewClient(redis.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := redis.Ping(context.Background(), client); err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}

	directory := redis.NewDirectory(client)
	broker := redis.NewBroker(client, l)
	identity := services.NewIdentityService(cfg)

	friendService := services.NewFriendService(directory, broker)
	messageService := services.NewMessageService(directory, broker)

	hub := websocket.NewHub()
	bridge := websocket.NewRedisBridge(broker, hub)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go hub.Run(ctx)
	go func() {
		if err := bridge.Run(ctx); err != nil && ctx.Err() == nil {
			l.Errorf("event bridge stopped: %s", err)
		}
	}()

	handlers := &server.Handlers{
		Friend:  handler.NewFriendHandler(friendService),
		Message: handler.NewMessageHandler(messageService),
		WS: websocket.NewHandler(
			identity,
			hub,
			websocket.NewChannelAuthorizer(directory),
			cfg.AllowedOrigins,
		),
	}

	srv := server.New(cfg, l)
	srv.SetupRoutes(handlers, identity, func(ctx context.Context) error {
		return redis.Ping(ctx, client)
	})

	if err := srv.Start(); err != nil {
		log.Fatalf("Server exited with error: %v", err)
	}
}
