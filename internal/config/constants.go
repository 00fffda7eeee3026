package config

import "time"

const (
	envConfigFile = "PUPPYBOWL_CONFIG"
	envDotenvFile = "DOTENV_FILE"

	keyPort           = "port"
	keyAPIBaseURL     = "api_base_url"
	keyAPICohort      = "api_cohort"
	keyAPIMode        = "api_mode"
	keyAPITimeout     = "api_timeout"
	keyAPIRetries     = "api_retries"
	keyNoticeDelay    = "notice_delay"
	keyRateLimit      = "rate_limit"
	keyRefresh        = "refresh_interval"
	keyMinify         = "frontend_minify"
	keyMetricsOn      = "metrics_enabled"
	keyMetricsPort    = "metrics_port"
	keyOtelEndpoint   = "otel_exporter_otlp_endpoint"
	keyOtelService    = "otel_service_name"
	keyOtelInsecure   = "otel_exporter_otlp_insecure"
	keyLogLevel       = "log_level"
	keyLogFormat      = "log_format"
	defaultDotenvFile = ".env"

	defaultPort = "4000"

	defaultAPIBaseURL = "https://fsa-puppy-bowl.herokuapp.com/api"
	defaultAPICohort  = "2302-ACC-PT-WEB-PT-A"
	defaultAPIMode    = ModeRemote
	defaultAPITimeout = 10 * time.Second
	defaultAPIRetries = 2

	// How long the "player added" notice stays on the page.
	defaultNoticeDelay = 3 * time.Second
	// Mutating requests allowed per client IP per minute.
	defaultRateLimit = 60

	defaultMetricsPort = "9090"
	defaultServiceName = "puppy-bowl-client"
	defaultLogLevel    = "info"
	defaultLogFormat   = "text"
)

// API modes.
const (
	ModeRemote  = "remote"
	ModeFixture = "fixture"
)
