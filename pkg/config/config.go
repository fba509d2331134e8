// Package config reads the bot's settings from the environment, after
// loading an optional .env file.
package config

import (
	"os"
	"sync"

	"emperror.dev/errors"
	"github.com/joho/godotenv"
)

// ErrMissingToken is returned by Load when botToken is unset.
var ErrMissingToken = errors.NewPlain("botToken is not set")

// Config holds all configuration values for the bot
type Config struct {
	BotToken   string
	DevGuildID string

	// An empty MQTTHost disables the broker.
	MQTTHost     string
	MQTTPort     string
	MQTTUser     string
	MQTTPassword string

	Port            string
	WebAllowedHosts string

	Environment string

	ErrorWebhook      string
	LogsWebhook       string
	LogsWebServerHook string
}

// Set at link time.
var (
	Version   = "Dev-Local"
	BuildTime = "Hoy"
)

var (
	cfg     *Config
	cfgOnce sync.Once
)

func resetForTesting() {
	cfg = nil
	cfgOnce = sync.Once{}
}

type envVar struct {
	key string
	def string
	dst *string
}

// vars lists every environment key the bot reads. The key spelling,
// "enviroment" included, matches the deployed .env files.
func (c *Config) vars() []envVar {
	return []envVar{
		{"botToken", "", &c.BotToken},
		{"devGuildId", "", &c.DevGuildID},
		{"MQTT_Host", "", &c.MQTTHost},
		{"MQTT_Port", "1883", &c.MQTTPort},
		{"MQTT_User", "", &c.MQTTUser},
		{"MQTT_Password", "", &c.MQTTPassword},
		{"PORT", "3000", &c.Port},
		{"webAllowedHosts", ".*", &c.WebAllowedHosts},
		{"enviroment", "dev", &c.Environment},
		{"errorWebhook", "", &c.ErrorWebhook},
		{"logsWebhook", "", &c.LogsWebhook},
		{"logsWebServerWebhook", "", &c.LogsWebServerHook},
	}
}

func fromEnv() *Config {
	_ = godotenv.Load()

	c := &Config{}
	for _, v := range c.vars() {
		*v.dst = getEnv(v.key, v.def)
	}
	return c
}

// Load reads the configuration once. The returned Config is never nil;
// the error reports settings the bot cannot start without.
func Load() (*Config, error) {
	c := Get()
	if c.BotToken == "" {
		return c, ErrMissingToken
	}
	return c, nil
}

// Get returns the configuration, reading it on first use.
func Get() *Config {
	cfgOnce.Do(func() { cfg = fromEnv() })
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// IsProd returns true if the environment is production
func (c *Config) IsProd() bool {
	return c.Environment == "prod"
}

// MQTTEnabled returns true if an MQTT broker is configured
func (c *Config) MQTTEnabled() bool {
	return c.MQTTHost != ""
}
