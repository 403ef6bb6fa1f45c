package cmd

import (
	"fmt"
	"time"
)

// Config carries the environment-backed settings of the service.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	CourierAPIURL     string
	CourierAPIKey     string
	CourierPlatform   string
	CourierAPITimeout time.Duration

	AssignmentEnabled bool
	AssignmentMode    string
	DefaultBranchCode string
}

// DSN builds the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
