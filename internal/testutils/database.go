package testutils

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pack/internal/model"
	"pack/pkg/database"
)

// SetupTestDB returns a transaction on the test database that is rolled back
// on cleanup.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	tx := OpenTestDB(t).Begin()
	t.Cleanup(func() {
		tx.Rollback()
	})
	return tx
}

// OpenTestDB connects to the test database from TEST_DATABASE_DSN or the
// POSTGRES_* variables and migrates it. Writes are not rolled back, so callers
// clean up after themselves. The test is skipped when the database is
// unreachable.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		host := getEnvOrDefault("POSTGRES_HOST", "localhost")
		port := getEnvOrDefault("POSTGRES_PORT", "5433")
		user := getEnvOrDefault("POSTGRES_USER", "test")
		password := getEnvOrDefault("POSTGRES_PASSWORD", "test")
		dbname := getEnvOrDefault("POSTGRES_DB", "pack_test")

		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable connect_timeout=2",
			host, port, user, password, dbname)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Skipf("test database unavailable: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Skipf("test database unavailable: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		t.Skipf("test database unavailable: %v", err)
	}

	if err := model.InitTable(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

// SetupTestRedis connects to the test Redis and flushes it on cleanup. The
// test is skipped when Redis is unreachable.
func SetupTestRedis(t *testing.T) *database.RedisClient {
	t.Helper()

	port, err := strconv.Atoi(getEnvOrDefault("REDIS_PORT", "6380"))
	if err != nil || port == 0 {
		port = 6380
	}

	client, err := database.InitRedis(&database.RedisConfig{
		ServiceName: "pack-test",
		Host:        getEnvOrDefault("REDIS_HOST", "localhost"),
		Port:        port,
		DB:          15,
	})
	if err != nil {
		t.Skipf("test redis unavailable: %v", err)
	}

	t.Cleanup(func() {
		client.FlushDB(context.Background())
		_ = client.Close()
	})
	return client
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
