package cmd

// Config carries the process configuration, loaded from the environment.
type Config struct {
	HTTPPort string

	AgentID         string
	AgentCredential string

	BackendBaseURL string
	BackendTimeout string

	AMQPUrl      string
	AMQPExchange string

	RedisAddr     string
	RedisPassword string

	GeoEndpoint string
	GeoTimeout  string

	SnapshotRefreshSchedule string
}
