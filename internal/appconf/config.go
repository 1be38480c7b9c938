package appconf

import (
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strconv"

	"communityconnect.org/internal/geo"
)

// Zeerust, North West province. Used as the reference point when a request
// does not carry its own coordinate.
const (
	DefaultLatitude  = -25.5388
	DefaultLongitude = 26.0850
)

// Config holds all the configuration settings for the application.
type Config struct {
	Port            int
	Env             Environment
	RateLimit       int  // requests per second per client
	TrustProxy      bool // take client addresses from X-Forwarded-For / X-Real-IP
	DBDriver        string
	DBDSN           string
	SeedPath        string
	DefaultLocation geo.Coordinate
	Verbose         bool
}

var dsnPasswordPattern = regexp.MustCompile(`(?i)(password\s*=\s*)('[^']*'|\S+)`)

// Redacted returns a copy of c that is safe to display. A password in a
// connection URL or a keyword/value DSN is replaced with "xxxxx".
func (c Config) Redacted() Config {
	c.DBDSN = redactDSN(c.DBDSN)
	return c
}

func redactDSN(dsn string) string {
	if u, err := url.Parse(dsn); err == nil && u.User != nil {
		if _, ok := u.User.Password(); ok {
			return u.Redacted()
		}
		return dsn
	}
	return dsnPasswordPattern.ReplaceAllString(dsn, "${1}xxxxx")
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Port:            4000,
		Env:             Development,
		RateLimit:       100,
		DBDriver:        "sqlite",
		DBDSN:           "data/directory.db",
		DefaultLocation: geo.Coordinate{Lat: DefaultLatitude, Lon: DefaultLongitude},
	}
}

// FromEnv returns Default overlaid with values from the process environment.
// Variables that are set but malformed are reported rather than ignored.
func FromEnv() (Config, error) {
	cfg := Default()

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("appconf: PORT %q: %w", v, err)
		}
		cfg.Port = port
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.Env = EnvFlagToEnvironment(v)
	}
	if v := os.Getenv("RATE_LIMIT"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("appconf: RATE_LIMIT %q: %w", v, err)
		}
		cfg.RateLimit = limit
	}
	if v := os.Getenv("TRUST_PROXY"); v != "" {
		trust, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("appconf: TRUST_PROXY %q: %w", v, err)
		}
		cfg.TrustProxy = trust
	}
	if v := os.Getenv("DB_DRIVER"); v != "" {
		cfg.DBDriver = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DBDSN = v
	}
	cfg.SeedPath = os.Getenv("SEED_PATH")

	lat, lon := cfg.DefaultLocation.Lat, cfg.DefaultLocation.Lon
	if v := os.Getenv("DEFAULT_LAT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("appconf: DEFAULT_LAT %q: %w", v, err)
		}
		lat = f
	}
	if v := os.Getenv("DEFAULT_LON"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("appconf: DEFAULT_LON %q: %w", v, err)
		}
		lon = f
	}
	loc, err := geo.NewCoordinate(lat, lon)
	if err != nil {
		return cfg, fmt.Errorf("appconf: default location: %w", err)
	}
	cfg.DefaultLocation = loc

	return cfg, nil
}
