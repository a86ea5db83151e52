package config

import (
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application's configuration.
type Config struct {
	Server struct {
		Port string
	}
	Database struct {
		DSN string // "memory" or a file path for SQLite
	}
	Assessment AssessmentConfig `mapstructure:"assessment"`
}

// AssessmentConfig holds the tunables of the assessment engine.
type AssessmentConfig struct {
	// InstrumentDir is an optional directory of YAML instrument
	// definitions loaded in addition to the built-in ones.
	InstrumentDir string `mapstructure:"instrument_dir"`

	// InactivityWindowSeconds is how long an active session may sit
	// without an answer before the sweep expires it.
	InactivityWindowSeconds int `mapstructure:"inactivity_window_seconds"`

	// SweepIntervalSeconds is how often the expiry sweep runs.
	SweepIntervalSeconds int `mapstructure:"sweep_interval_seconds"`
}

// InactivityWindow returns the configured window as a duration.
func (a AssessmentConfig) InactivityWindow() time.Duration {
	return time.Duration(a.InactivityWindowSeconds) * time.Second
}

// SweepInterval returns the configured sweep cadence as a duration.
func (a AssessmentConfig) SweepInterval() time.Duration {
	return time.Duration(a.SweepIntervalSeconds) * time.Second
}

// AppConfig is the global configuration instance.
var AppConfig Config

// LoadConfig loads configuration from file and environment variables.
func LoadConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../config") // For running from locations like tests

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("database.dsn", "memory")
	viper.SetDefault("assessment.inactivity_window_seconds", 60)
	viper.SetDefault("assessment.sweep_interval_seconds", 15)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("WARN: [Config] Configuration file (config.yaml) not found. Using environment variables and defaults.")
		} else {
			log.Fatalf("FATAL: [Config] Error reading configuration file: %v", err)
		}
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("FATAL: [Config] Failed to unmarshal configuration into AppConfig struct: %v", err)
	}

	// Environment variable overrides
	if port := os.Getenv("SERVER_PORT"); port != "" {
		AppConfig.Server.Port = port
		log.Printf("INFO: [Config] Server port overridden by environment variable SERVER_PORT: %s", port)
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		AppConfig.Database.DSN = dsn
		log.Println("INFO: [Config] Database DSN overridden by environment variable DATABASE_DSN.")
	}
	if dir := os.Getenv("INSTRUMENT_DIR"); dir != "" {
		AppConfig.Assessment.InstrumentDir = dir
		log.Printf("INFO: [Config] Instrument directory overridden by environment variable INSTRUMENT_DIR: %s", dir)
	}

	if AppConfig.Assessment.InactivityWindowSeconds <= 0 {
		log.Printf("WARN: [Config] Non-positive inactivity window (%d), falling back to 60 seconds.", AppConfig.Assessment.InactivityWindowSeconds)
		AppConfig.Assessment.InactivityWindowSeconds = 60
	}
	if AppConfig.Assessment.SweepIntervalSeconds <= 0 {
		log.Printf("WARN: [Config] Non-positive sweep interval (%d), falling back to 15 seconds.", AppConfig.Assessment.SweepIntervalSeconds)
		AppConfig.Assessment.SweepIntervalSeconds = 15
	}

	log.Println("INFO: [Config] Configuration loading complete.")
}
