package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agenthub/cmd"
	_ "agenthub/docs"
	amqpin "agenthub/internal/adapters/in/amqp"
	httpin "agenthub/internal/adapters/in/http"
	"agenthub/internal/core/application/usecases/commands"
	"agenthub/internal/core/domain/model/order"
	"agenthub/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	amqp091 "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	redisClient := redis.NewClient(&redis.Options{
		Addr:     configs.RedisAddr,
		Password: configs.RedisPassword,
	})
	defer redisClient.Close()

	root, err := cmd.NewCompositionRoot(configs, redisClient, logger)
	if err != nil {
		logger.Error("Failed to build composition root", "error", err)
		os.Exit(1)
	}

	// Push subscription. A broker outage at boot parks the intent with a
	// warning; the session still serves the snapshot.
	channel, err := amqpin.NewChannel(configs.AMQPExchange, logger)
	if err != nil {
		logger.Error("Failed to create notification channel", "error", err)
		os.Exit(1)
	}
	defer channel.Close()

	var amqpConn *amqp091.Connection
	if amqpConn, err = amqp091.Dial(configs.AMQPUrl); err != nil {
		logger.Warn("Push transport unavailable, continuing disconnected", "error", err)
	} else {
		defer amqpConn.Close()
		amqpChannel, chErr := amqpConn.Channel()
		if chErr != nil {
			logger.Warn("Push transport channel failed, continuing disconnected", "error", chErr)
		} else if err = channel.Connect(amqpChannel); err != nil {
			logger.Warn("Push transport binding failed, continuing disconnected", "error", err)
		}
	}

	// Without an agent identity there is no topic to bind; the session keeps
	// serving the snapshot and the HTTP surface, it just receives no pushes.
	ingestHandler := root.CreateIngestOrderCommandHandler()
	if topic, topicErr := root.Session().Topic(); topicErr != nil {
		logger.Warn("Agent identity unavailable, push subscription skipped", "error", topicErr)
	} else {
		handle, subErr := channel.Subscribe(topic, func(o *order.Order) {
			ingestOrder(ingestHandler, o, logger)
		})
		if subErr != nil {
			logger.Error("Failed to subscribe to push topic", "topic", topic, "error", subErr)
			os.Exit(1)
		}
		defer channel.Unsubscribe(handle)
	}

	// Initial snapshot. Fail-soft: an unreachable backend leaves the visible
	// set empty until the refresh job catches up.
	loadSnapshotHandler := root.CreateLoadSnapshotCommandHandler()
	startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err = loadSnapshotHandler.Handle(startupCtx, commands.NewLoadSnapshotCommand()); err != nil {
		logger.Warn("Initial snapshot load failed", "error", err)
	}
	cancel()

	jobManager := jobs.NewJobManager(loadSnapshotHandler, configs.SnapshotRefreshSchedule, logger)
	if err = jobManager.StartAll(); err != nil {
		logger.Error("Failed to start jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	startWebServer(root, configs.HTTPPort, logger)
}

func ingestOrder(handler commands.IngestOrderCommandHandler, o *order.Order, logger *slog.Logger) {
	cmd, err := commands.NewIngestOrderCommand(
		o.ID(), o.CustomerName(), o.DeliveryAddress(), o.Destination(), o.TotalAmount())
	if err != nil {
		logger.Warn("Dropping invalid push order", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err = handler.Handle(ctx, cmd); err != nil {
		logger.Warn("Push order ingestion failed", "orderId", o.ID(), "error", err)
	}
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:                goDotEnvVariable("HTTP_PORT"),
		AgentID:                 goDotEnvVariable("AGENT_ID"),
		AgentCredential:         goDotEnvVariable("AGENT_CREDENTIAL"),
		BackendBaseURL:          goDotEnvVariable("BACKEND_BASE_URL"),
		BackendTimeout:          goDotEnvVariable("BACKEND_TIMEOUT"),
		AMQPUrl:                 goDotEnvVariable("AMQP_URL"),
		AMQPExchange:            goDotEnvVariable("AMQP_EXCHANGE"),
		RedisAddr:               goDotEnvVariable("REDIS_ADDR"),
		RedisPassword:           goDotEnvVariable("REDIS_PASSWORD"),
		GeoEndpoint:             goDotEnvVariable("GEO_ENDPOINT"),
		GeoTimeout:              goDotEnvVariable("GEO_TIMEOUT"),
		SnapshotRefreshSchedule: goDotEnvVariable("SNAPSHOT_REFRESH_SCHEDULE"),
	}
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func startWebServer(root cmd.CompositionRoot, port string, logger *slog.Logger) {
	server := httpin.NewServer(
		root.CreateAcceptOrderCommandHandler(),
		root.CreateRejectOrderCommandHandler(),
		root.CreateGetAssignedOrdersQueryHandler(),
		root.CreateGetActiveRouteQueryHandler(),
		root.RouteBoard(),
	)

	e := echo.New()
	server.RegisterRoutes(e)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Graceful stop on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown failed", "error", err)
		}
	}()

	if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		e.Logger.Fatal(err)
	}
}
