package main

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"bakery/cmd"
	httpin "bakery/internal/adapters/in/http"
	"bakery/internal/adapters/out/postgres/branchrepo"
	"bakery/internal/adapters/out/postgres/orderrepo"
	"bakery/internal/adapters/out/postgres/zonerepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := mustOpenDB(configs)
	mustMigrate(gormDB)

	app := cmd.NewCompositionRoot(configs, gormDB)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded: %v", err)
	}

	return cmd.Config{
		HTTPPort:   envOr("HTTP_PORT", "8080"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     envOr("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSslMode:  envOr("DB_SSLMODE", "disable"),

		CourierAPIURL:     os.Getenv("COURIER_API_URL"),
		CourierAPIKey:     os.Getenv("COURIER_API_KEY"),
		CourierPlatform:   envOr("COURIER_PLATFORM", "courier"),
		CourierAPITimeout: envDuration("COURIER_API_TIMEOUT", 10*time.Second),

		AssignmentEnabled: envBool("ASSIGNMENT_ENABLED", true),
		AssignmentMode:    envOr("ASSIGNMENT_MODE", "auto"),
		DefaultBranchCode: envOr("DEFAULT_BRANCH_CODE", "MAIN"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		log.Warnf("Invalid boolean for %s: %q, using default", key, v)
		return fallback
	}
	return parsed
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		log.Warnf("Invalid duration for %s: %q, using default", key, v)
		return fallback
	}
	return parsed
}

func mustOpenDB(configs cmd.Config) *gorm.DB {
	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func mustMigrate(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.HistoryEntryDTO{},
		&branchrepo.BranchDTO{},
		&branchrepo.ServiceAreaDTO{},
		&zonerepo.ZoneDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}

func startWebServer(app cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpin.NewServer(
		app.CreatePlaceOrderCommandHandler(),
		app.CreateAssignBranchCommandHandler(),
		app.CreateApproveAssignmentCommandHandler(),
		app.CreatePrepareOrderCommandHandler(),
		app.CreateSendToCourierCommandHandler(),
		app.CreateUpdateStatusCommandHandler(),
		app.CreateDeleteOrderCommandHandler(),
		app.CreateGetOrderStatusQueryHandler(),
		app.CreateGetOrderHistoryQueryHandler(),
		app.CreateGetOrderTimelineQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
