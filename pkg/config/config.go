package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/pflag"
)

// Config holds the configuration for the bayscan scoring & learning engine.
type Config struct {
	// Location of the fixed coastal dock this engine forecasts for.
	Latitude     float64
	Longitude    float64
	Timezone     string
	LocationName string

	// Tide source configuration.
	TidePredictionStationID string
	TideRealtimeStationID   string
	TideAPIURL              string

	// Weather source configuration.
	WeatherAPIURL    string
	WeatherUserAgent string

	// Marine hazard source configuration.
	MarineZone                string
	MarineFetchIntervalMin    int
	MarineSafeThreshold       int
	MarineCautionThreshold    int
	MarinePenaltyUnsafe       int
	MarinePenaltyCaution      int

	// Scheduler intervals (minutes).
	FetchIntervalMinutes           int
	ForecastComputeIntervalMinutes int
	SnapshotIntervalMinutes        int
	PeriodicRecalcMinutes          int
	HoursAhead                     int

	// Alert thresholds per species. Holds NewConfig's compiled-in defaults;
	// it is not read from env, flags or a YAML file.
	AlertThresholds map[string]float64

	// ZoneOverlayPath optionally points at a YAML file overriding the dock's
	// built-in zone geometry (internal/rules.ZoneGeometries), read once at
	// startup by cmd/bayscan-scheduler when it seeds the zones table;
	// cmd/bayscan-api does not read it.
	ZoneOverlayPath string

	// Server configuration for cmd/bayscan-api.
	ServerHost  string
	ServerPort  int
	ServerDebug bool

	// Postgres configuration.
	PostgresHost               string
	PostgresPort               int
	PostgresUser               string
	PostgresPassword           string
	PostgresDB                 string
	PostgresSSLMode            string
	PostgresMaxConnections     int
	PostgresMaxIdleConnections int
	PostgresConnMaxLifetime    time.Duration

	// Redis configuration (used for non-reentrancy locks, not score storage).
	RedisHost     string
	RedisPort     int
	RedisPassword string
	RedisDB       int
	LockLeaseTime time.Duration

	// MQTT configuration (internal event fan-out between write API and engine).
	MQTTBroker   string
	MQTTPort     int
	MQTTUser     string
	MQTTPassword string
	MQTTClientID string

	// Service configuration.
	ServiceName string
	HealthPort  int
	LogLevel    string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		// Belle Fontaine Dock, Mobile Bay.
		Latitude:     30.4210,
		Longitude:    -88.1200,
		Timezone:     "America/Chicago",
		LocationName: "Belle Fontaine Dock",

		TidePredictionStationID: "8735180",
		TideRealtimeStationID:   "8735180",
		TideAPIURL:              "https://api.tidesandcurrents.noaa.gov/api/prod/datagetter",

		WeatherAPIURL:    "https://api.weather.gov",
		WeatherUserAgent: "bayscan-engine (contact: ops@bayscan.example)",

		MarineZone:             "GMZ630",
		MarineFetchIntervalMin: 30,
		MarineSafeThreshold:    80,
		MarineCautionThreshold: 50,
		MarinePenaltyUnsafe:    -10,
		MarinePenaltyCaution:   -4,

		FetchIntervalMinutes:           30,
		ForecastComputeIntervalMinutes: 30,
		SnapshotIntervalMinutes:        10,
		PeriodicRecalcMinutes:          30,
		HoursAhead:                     24,

		AlertThresholds: map[string]float64{
			"speckled_trout": 70,
			"redfish":        70,
			"flounder":       65,
			"sheepshead":     65,
			"black_drum":     65,
		},

		ServerHost:  "0.0.0.0",
		ServerPort:  8090,
		ServerDebug: false,

		PostgresHost:               "localhost",
		PostgresPort:               5432,
		PostgresUser:               "postgres",
		PostgresPassword:           "",
		PostgresDB:                 "bayscan",
		PostgresSSLMode:            "disable",
		PostgresMaxConnections:     10,
		PostgresMaxIdleConnections: 5,
		PostgresConnMaxLifetime:    5 * time.Minute,

		RedisHost:     "localhost",
		RedisPort:     6379,
		RedisPassword: "",
		RedisDB:       0,
		LockLeaseTime: 2 * time.Minute,

		MQTTBroker:   "localhost",
		MQTTPort:     1883,
		MQTTUser:     "",
		MQTTPassword: "",
		MQTTClientID: "",

		ServiceName: "bayscan-engine",
		HealthPort:  8080,
		LogLevel:    "info",
	}
}

// LoadFromEnv loads configuration from environment variables with the
// BAYSCAN_ prefix, overriding any values already set.
func (c *Config) LoadFromEnv() {
	if v := os.Getenv("BAYSCAN_LATITUDE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Latitude = f
		}
	}
	if v := os.Getenv("BAYSCAN_LONGITUDE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Longitude = f
		}
	}
	if v := os.Getenv("BAYSCAN_TIMEZONE"); v != "" {
		c.Timezone = v
	}
	if v := os.Getenv("BAYSCAN_LOCATION_NAME"); v != "" {
		c.LocationName = v
	}

	if v := os.Getenv("BAYSCAN_TIDE_PREDICTION_STATION_ID"); v != "" {
		c.TidePredictionStationID = v
	}
	if v := os.Getenv("BAYSCAN_TIDE_REALTIME_STATION_ID"); v != "" {
		c.TideRealtimeStationID = v
	}
	if v := os.Getenv("BAYSCAN_TIDE_API_URL"); v != "" {
		c.TideAPIURL = v
	}

	if v := os.Getenv("BAYSCAN_WEATHER_API_URL"); v != "" {
		c.WeatherAPIURL = v
	}
	if v := os.Getenv("BAYSCAN_WEATHER_USER_AGENT"); v != "" {
		c.WeatherUserAgent = v
	}

	if v := os.Getenv("BAYSCAN_MARINE_ZONE"); v != "" {
		c.MarineZone = v
	}
	if v := os.Getenv("BAYSCAN_MARINE_FETCH_INTERVAL_MIN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MarineFetchIntervalMin = n
		}
	}

	if v := os.Getenv("BAYSCAN_FETCH_INTERVAL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.FetchIntervalMinutes = n
		}
	}
	if v := os.Getenv("BAYSCAN_FORECAST_COMPUTE_INTERVAL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.ForecastComputeIntervalMinutes = n
		}
	}
	if v := os.Getenv("BAYSCAN_SNAPSHOT_INTERVAL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.SnapshotIntervalMinutes = n
		}
	}
	if v := os.Getenv("BAYSCAN_PERIODIC_RECALC_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.PeriodicRecalcMinutes = n
		}
	}
	if v := os.Getenv("BAYSCAN_HOURS_AHEAD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.HoursAhead = n
		}
	}

	if v := os.Getenv("BAYSCAN_ZONE_OVERLAY_PATH"); v != "" {
		c.ZoneOverlayPath = v
	}

	if v := os.Getenv("BAYSCAN_SERVER_HOST"); v != "" {
		c.ServerHost = v
	}
	if v := os.Getenv("BAYSCAN_SERVER_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.ServerPort = n
		}
	}
	if v := os.Getenv("BAYSCAN_SERVER_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.ServerDebug = b
		}
	}

	if v := os.Getenv("BAYSCAN_POSTGRES_HOST"); v != "" {
		c.PostgresHost = v
	}
	if v := os.Getenv("BAYSCAN_POSTGRES_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.PostgresPort = n
		}
	}
	if v := os.Getenv("BAYSCAN_POSTGRES_USER"); v != "" {
		c.PostgresUser = v
	}
	if v := os.Getenv("BAYSCAN_POSTGRES_PASSWORD"); v != "" {
		c.PostgresPassword = v
	}
	if v := os.Getenv("BAYSCAN_POSTGRES_DB"); v != "" {
		c.PostgresDB = v
	}
	if v := os.Getenv("BAYSCAN_POSTGRES_SSLMODE"); v != "" {
		c.PostgresSSLMode = v
	}
	if v := os.Getenv("BAYSCAN_POSTGRES_MAX_OPEN_CONNS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.PostgresMaxConnections = n
		}
	}
	if v := os.Getenv("BAYSCAN_POSTGRES_MAX_IDLE_CONNS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.PostgresMaxIdleConnections = n
		}
	}
	if v := os.Getenv("BAYSCAN_POSTGRES_CONN_MAX_LIFE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.PostgresConnMaxLifetime = d
		}
	}

	if v := os.Getenv("BAYSCAN_REDIS_HOST"); v != "" {
		c.RedisHost = v
	}
	if v := os.Getenv("BAYSCAN_REDIS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RedisPort = n
		}
	}
	if v := os.Getenv("BAYSCAN_REDIS_PASSWORD"); v != "" {
		c.RedisPassword = v
	}
	if v := os.Getenv("BAYSCAN_REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RedisDB = n
		}
	}
	if v := os.Getenv("BAYSCAN_LOCK_LEASE_TIME"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.LockLeaseTime = d
		}
	}

	if v := os.Getenv("BAYSCAN_MQTT_BROKER"); v != "" {
		c.MQTTBroker = v
	}
	if v := os.Getenv("BAYSCAN_MQTT_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MQTTPort = n
		}
	}
	if v := os.Getenv("BAYSCAN_MQTT_USER"); v != "" {
		c.MQTTUser = v
	}
	if v := os.Getenv("BAYSCAN_MQTT_PASSWORD"); v != "" {
		c.MQTTPassword = v
	}
	if v := os.Getenv("BAYSCAN_MQTT_CLIENT_ID"); v != "" {
		c.MQTTClientID = v
	}

	if v := os.Getenv("BAYSCAN_SERVICE_NAME"); v != "" {
		c.ServiceName = v
	}
	if v := os.Getenv("BAYSCAN_HEALTH_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.HealthPort = n
		}
	}
	if v := os.Getenv("BAYSCAN_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// LoadFromFlags parses command-line flags and overrides config values.
func (c *Config) LoadFromFlags() {
	pflag.Float64Var(&c.Latitude, "latitude", c.Latitude, "Dock latitude")
	pflag.Float64Var(&c.Longitude, "longitude", c.Longitude, "Dock longitude")
	pflag.StringVar(&c.Timezone, "timezone", c.Timezone, "IANA timezone of the dock location")
	pflag.StringVar(&c.LocationName, "location-name", c.LocationName, "Display name of the dock location")

	pflag.StringVar(&c.TidePredictionStationID, "tide-prediction-station-id", c.TidePredictionStationID, "NOAA tide prediction station id")
	pflag.StringVar(&c.TideRealtimeStationID, "tide-realtime-station-id", c.TideRealtimeStationID, "NOAA tide realtime station id")
	pflag.StringVar(&c.TideAPIURL, "tide-api-url", c.TideAPIURL, "Tide API base URL")

	pflag.StringVar(&c.WeatherAPIURL, "weather-api-url", c.WeatherAPIURL, "Weather API base URL")
	pflag.StringVar(&c.WeatherUserAgent, "weather-user-agent", c.WeatherUserAgent, "Weather API user agent")

	pflag.StringVar(&c.MarineZone, "marine-zone", c.MarineZone, "NWS marine zone id")
	pflag.IntVar(&c.MarineFetchIntervalMin, "marine-fetch-interval-min", c.MarineFetchIntervalMin, "Marine forecast fetch interval in minutes")

	pflag.IntVar(&c.FetchIntervalMinutes, "fetch-interval-minutes", c.FetchIntervalMinutes, "Ingestion job interval in minutes")
	pflag.IntVar(&c.ForecastComputeIntervalMinutes, "forecast-compute-interval-minutes", c.ForecastComputeIntervalMinutes, "Forecast window recompute interval in minutes")
	pflag.IntVar(&c.SnapshotIntervalMinutes, "snapshot-interval-minutes", c.SnapshotIntervalMinutes, "Environment snapshot interval in minutes")
	pflag.IntVar(&c.PeriodicRecalcMinutes, "periodic-recalc-minutes", c.PeriodicRecalcMinutes, "Periodic score recalculation interval in minutes")
	pflag.IntVar(&c.HoursAhead, "hours-ahead", c.HoursAhead, "Forecast horizon in hours (capped at 48)")

	pflag.StringVar(&c.ZoneOverlayPath, "zone-overlay-path", c.ZoneOverlayPath, "Optional YAML file overriding built-in zone geometry")

	pflag.StringVar(&c.ServerHost, "server-host", c.ServerHost, "HTTP API bind host")
	pflag.IntVar(&c.ServerPort, "server-port", c.ServerPort, "HTTP API bind port")
	pflag.BoolVar(&c.ServerDebug, "server-debug", c.ServerDebug, "Enable verbose HTTP API logging")

	pflag.StringVar(&c.PostgresHost, "postgres-host", c.PostgresHost, "PostgreSQL hostname")
	pflag.IntVar(&c.PostgresPort, "postgres-port", c.PostgresPort, "PostgreSQL port")
	pflag.StringVar(&c.PostgresUser, "postgres-user", c.PostgresUser, "PostgreSQL username")
	pflag.StringVar(&c.PostgresPassword, "postgres-password", c.PostgresPassword, "PostgreSQL password")
	pflag.StringVar(&c.PostgresDB, "postgres-db", c.PostgresDB, "PostgreSQL database name")
	pflag.StringVar(&c.PostgresSSLMode, "postgres-sslmode", c.PostgresSSLMode, "PostgreSQL SSL mode")
	pflag.IntVar(&c.PostgresMaxConnections, "postgres-max-conns", c.PostgresMaxConnections, "PostgreSQL max connections")
	pflag.IntVar(&c.PostgresMaxIdleConnections, "postgres-max-idle-conns", c.PostgresMaxIdleConnections, "PostgreSQL max idle connections")
	pflag.DurationVar(&c.PostgresConnMaxLifetime, "postgres-conn-max-life", c.PostgresConnMaxLifetime, "PostgreSQL connection max lifetime")

	pflag.StringVar(&c.RedisHost, "redis-host", c.RedisHost, "Redis hostname")
	pflag.IntVar(&c.RedisPort, "redis-port", c.RedisPort, "Redis port")
	pflag.StringVar(&c.RedisPassword, "redis-password", c.RedisPassword, "Redis password")
	pflag.IntVar(&c.RedisDB, "redis-db", c.RedisDB, "Redis database number")
	pflag.DurationVar(&c.LockLeaseTime, "lock-lease-time", c.LockLeaseTime, "Non-reentrancy lock lease duration")

	pflag.StringVar(&c.MQTTBroker, "mqtt-broker", c.MQTTBroker, "MQTT broker hostname")
	pflag.IntVar(&c.MQTTPort, "mqtt-port", c.MQTTPort, "MQTT broker port")
	pflag.StringVar(&c.MQTTUser, "mqtt-user", c.MQTTUser, "MQTT username")
	pflag.StringVar(&c.MQTTPassword, "mqtt-password", c.MQTTPassword, "MQTT password")
	pflag.StringVar(&c.MQTTClientID, "mqtt-client-id", c.MQTTClientID, "MQTT client ID")

	pflag.StringVar(&c.ServiceName, "service-name", c.ServiceName, "Service name")
	pflag.IntVar(&c.HealthPort, "health-port", c.HealthPort, "Health check HTTP port")
	pflag.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level (debug, info, warn, error)")

	pflag.Parse()
}

// Validate checks that required configuration values are set.
func (c *Config) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("latitude must be between -90 and 90")
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("longitude must be between -180 and 180")
	}
	if c.Timezone == "" {
		return fmt.Errorf("timezone is required")
	}
	if c.HoursAhead <= 0 || c.HoursAhead > 48 {
		return fmt.Errorf("hours ahead must be between 1 and 48")
	}
	if c.SnapshotIntervalMinutes <= 0 {
		return fmt.Errorf("snapshot interval minutes must be positive")
	}
	if c.PeriodicRecalcMinutes <= 0 {
		return fmt.Errorf("periodic recalc minutes must be positive")
	}
	if c.RedisHost == "" {
		return fmt.Errorf("redis host is required")
	}
	if c.RedisPort <= 0 || c.RedisPort > 65535 {
		return fmt.Errorf("redis port must be between 1 and 65535")
	}
	if c.MQTTBroker == "" {
		return fmt.Errorf("mqtt broker is required")
	}
	if c.MQTTPort <= 0 || c.MQTTPort > 65535 {
		return fmt.Errorf("mqtt port must be between 1 and 65535")
	}
	if c.HealthPort <= 0 || c.HealthPort > 65535 {
		return fmt.Errorf("health port must be between 1 and 65535")
	}
	if c.ServiceName == "" {
		return fmt.Errorf("service name is required")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// MQTTAddress returns the full MQTT broker address.
func (c *Config) MQTTAddress() string {
	return fmt.Sprintf("tcp://%s:%d", c.MQTTBroker, c.MQTTPort)
}

// RedisAddress returns the full Redis address.
func (c *Config) RedisAddress() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// PostgresConnectionString returns a PostgreSQL connection string.
func (c *Config) PostgresConnectionString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresSSLMode)
}
