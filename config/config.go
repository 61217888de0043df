package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type App struct {
	// Network
	Port string `envconfig:"PORT" default:"8080"`
	// Data store
	StoreBaseURL string        `envconfig:"STORE_BASE_URL" default:"http://localhost:3001"`
	StoreTimeout time.Duration `envconfig:"STORE_TIMEOUT" default:"10s"`
	// Auth
	JWTSecret   string `envconfig:"JWT_SECRET" required:"true"`
	AdminAPIKey string `envconfig:"ADMIN_API_KEY" required:"true"`
	// Calendar used when grouping dashboard trends by date; empty means the
	// server's local time zone.
	TimeZone string `envconfig:"DASHBOARD_TZ"`
}

func Load() (App, error) {
	var c App
	err := envconfig.Process("", &c)
	return c, err
}

// Location resolves the configured dashboard time zone.
func (c App) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.TimeZone)
}
