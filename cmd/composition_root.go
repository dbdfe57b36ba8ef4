package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"agenthub/internal/adapters/out/backendhttp"
	"agenthub/internal/adapters/out/geolocation"
	"agenthub/internal/adapters/out/memstore"
	"agenthub/internal/adapters/out/redispub"
	"agenthub/internal/adapters/out/routeboard"
	"agenthub/internal/core/application/usecases/commands"
	"agenthub/internal/core/application/usecases/queries"
	"agenthub/internal/core/domain/model/kernel"
	"agenthub/internal/core/domain/model/session"

	"github.com/redis/go-redis/v9"
)

// CompositionRoot wires ports to adapters for one agent session and hands
// out command and query handlers built on the shared instances.
type CompositionRoot struct {
	session session.Session

	store     *memstore.Store
	board     *routeboard.Board
	actions   *commands.ActionGuard
	backend   *backendhttp.Client
	locations *geolocation.Provider
	publisher *redispub.Publisher
}

// NewCompositionRoot builds the session's object graph from config.
func NewCompositionRoot(config Config, redisClient *redis.Client, logger *slog.Logger) (CompositionRoot, error) {
	agentID, err := kernel.UUIDFromString(config.AgentID)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("AGENT_ID is invalid: %w", err)
	}

	sess, err := session.NewSession(agentID, config.AgentCredential)
	if err != nil {
		return CompositionRoot{}, err
	}

	backend, err := backendhttp.NewClient(config.BackendBaseURL, sess,
		parseDuration(logger, "BACKEND_TIMEOUT", config.BackendTimeout))
	if err != nil {
		return CompositionRoot{}, err
	}

	locations, err := geolocation.NewProvider(config.GeoEndpoint,
		parseDuration(logger, "GEO_TIMEOUT", config.GeoTimeout))
	if err != nil {
		return CompositionRoot{}, err
	}

	publisher, err := redispub.NewPublisher(redisClient, sess)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		session:   sess,
		store:     memstore.NewStore(),
		board:     routeboard.NewBoard(),
		actions:   commands.NewActionGuard(),
		backend:   backend,
		locations: locations,
		publisher: publisher,
	}, nil
}

// Session returns the agent session the process runs for.
func (c *CompositionRoot) Session() session.Session {
	return c.session
}

// RouteBoard returns the shared current-route holder.
func (c *CompositionRoot) RouteBoard() *routeboard.Board {
	return c.board
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	return commands.NewAcceptOrderCommandHandler(
		c.backend, c.store, c.locations, c.board, c.publisher, c.actions)
}

func (c *CompositionRoot) CreateRejectOrderCommandHandler() commands.RejectOrderCommandHandler {
	return commands.NewRejectOrderCommandHandler(c.backend, c.store, c.publisher, c.actions)
}

func (c *CompositionRoot) CreateIngestOrderCommandHandler() commands.IngestOrderCommandHandler {
	return commands.NewIngestOrderCommandHandler(c.store, c.publisher)
}

func (c *CompositionRoot) CreateLoadSnapshotCommandHandler() commands.LoadSnapshotCommandHandler {
	return commands.NewLoadSnapshotCommandHandler(c.backend, c.store)
}

func (c *CompositionRoot) CreateGetAssignedOrdersQueryHandler() queries.GetAssignedOrdersQueryHandler {
	return queries.NewGetAssignedOrdersQueryHandler(c.store)
}

func (c *CompositionRoot) CreateGetActiveRouteQueryHandler() queries.GetActiveRouteQueryHandler {
	return queries.NewGetActiveRouteQueryHandler(c.board)
}

// parseDuration reads a duration string, returning zero (the adapter default)
// when the value is empty. A malformed value also falls back to the default,
// with a warning so the config typo is visible.
func parseDuration(logger *slog.Logger, name, s string) time.Duration {
	if s == "" {
		return 0
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		logger.Warn("Malformed duration in config, using the default", "name", name, "value", s, "error", err)
		return 0
	}
	return d
}
