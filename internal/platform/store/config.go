package store

import "time"

// Config enables and configures each backend
type Config struct {
	PG PGConfig
	CH CHConfig
}

type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int
	AppName     string // application_name in pg_stat_activity

	// startup wait, zero picks 20 attempts of 3s each
	ConnectRetries int
	PingTimeout    time.Duration
}

type CHConfig struct {
	Enabled    bool
	URL        string
	ClientName string // shown in system.query_log
	ClientTag  string // process role, api or seed
}
