// test/helpers/helpers.go
package helpers

import (
	"bytes"
	"context"
	"database/sql"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/warehouse-ms/internal/adapters/db"
	"github.com/ammerola/warehouse-ms/internal/core/domain"
	"github.com/ammerola/warehouse-ms/internal/pkg/config"
)

// TestDB is a migrated Postgres running in a throwaway container
type TestDB struct {
	*db.Database
	URL string
}

// TestRedis pairs a client with the miniredis it talks to
type TestRedis struct {
	Client *redis.Client
	Server *miniredis.Miniredis
}

// TestLogger logs errors only, or everything under go test -v
func TestLogger() *slog.Logger {
	level := slog.LevelError
	if testing.Verbose() {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// SetupTestDB starts postgres:16-alpine, waits until it accepts
// connections and applies the embedded migrations. The container is purged
// when the test ends.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err, "docker is not reachable")
	pool.MaxWait = 90 * time.Second

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=test_warehouse",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "postgres container did not start")
	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("purge postgres container: %v", err)
		}
	})

	cfg := &db.Config{
		Host:               "localhost",
		Port:               resource.GetPort("5432/tcp"),
		User:               "test",
		Password:           "test",
		Database:           "test_warehouse",
		SSLMode:            "disable",
		MaxConnections:     5,
		MinConnections:     1,
		MaxConnLifetime:    time.Hour,
		MaxConnIdleTime:    10 * time.Minute,
		HealthCheckPeriod:  time.Minute,
		ConnectTimeout:     5 * time.Second,
		EnableQueryLogging: testing.Verbose(),
	}

	var database *db.Database
	require.NoError(t, pool.Retry(func() error {
		var err error
		database, err = db.NewDatabase(context.Background(), cfg, TestLogger())
		return err
	}), "postgres never accepted connections")
	t.Cleanup(database.Close)

	require.NoError(t, db.RunMigrationsWithRetry(context.Background(), &db.MigrationConfig{
		DatabaseURL: cfg.URL(),
	}, TestLogger(), 3), "migrations failed")

	return &TestDB{Database: database, URL: cfg.URL()}
}

// SetupTestRedis starts a miniredis that lives as long as the test
func SetupTestRedis(t *testing.T) *TestRedis {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return &TestRedis{Client: client, Server: mr}
}

// SetupMockDB returns a sqlmock-backed *sql.DB for the database/sql
// readers
func SetupMockDB(t *testing.T) (sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return mock, conn
}

// LoadTestConfig returns a test configuration
func LoadTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "warehouse-ms-test",
			Environment: "test",
			Version:     "test",
			LogLevel:    "debug",
			LogFormat:   "text",
		},
		Database: config.DatabaseConfig{
			Host:               "localhost",
			Port:               "5432",
			User:               "test",
			Password:           "test",
			Name:               "test_warehouse",
			SSLMode:            "disable",
			MaxConnections:     10,
			MinConnections:     2,
			EnableQueryLogging: true,
		},
		Redis: config.RedisConfig{
			Host:     "localhost",
			Port:     "6379",
			DB:       0,
			TTL:      time.Minute,
			PoolSize: 10,
		},
		Auth: config.AuthConfig{
			UserName:     "warehouse",
			UserPassword: "warehouse-pass",
			Timeout:      3 * time.Second,
		},
		FileProcessing: config.FileProcessingConfig{
			ExcelMaxSizeMB:    5,
			ProcessingTimeout: time.Minute,
			TempDir:           os.TempDir(),
			UploadRetention:   24 * time.Hour,
		},
		Security: config.SecurityConfig{
			RateLimitRequests: 100,
			RateLimitDuration: time.Minute,
			AllowedOrigins:    []string{"*"},
			SecureHeaders:     false,
		},
		Server: config.ServerConfig{
			Host:         "localhost",
			Port:         "8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
	}
}

// CreateTestContact returns a contact filled with fake data
func CreateTestContact() domain.Contact {
	return domain.Contact{
		Name:    gofakeit.Company(),
		Country: gofakeit.Country(),
		Address: gofakeit.Street(),
		Phone:   gofakeit.Phone(),
		Email:   gofakeit.Email(),
	}
}

// CreateTestSupplier creates a supplier with fake contact data
func CreateTestSupplier(overrides ...func(*domain.Supplier)) *domain.Supplier {
	s := &domain.Supplier{Contact: CreateTestContact()}
	for _, override := range overrides {
		override(s)
	}
	return s
}

// CreateTestManufacturer creates a manufacturer with fake contact data
func CreateTestManufacturer(overrides ...func(*domain.Manufacturer)) *domain.Manufacturer {
	m := &domain.Manufacturer{Contact: CreateTestContact()}
	for _, override := range overrides {
		override(m)
	}
	return m
}

// CreateTestWarehouse creates a warehouse with a fake product name
func CreateTestWarehouse(overrides ...func(*domain.Warehouse)) *domain.Warehouse {
	w := &domain.Warehouse{
		Article:  gofakeit.Regex(`[A-Z]{2}-[0-9]{5}`),
		Name:     gofakeit.ProductName(),
		Warranty: gofakeit.IntRange(0, 36),
	}
	for _, override := range overrides {
		override(w)
	}
	return w
}

// CreateTestSerialNumber creates a serial number in the warehouse status
func CreateTestSerialNumber(warehouseID int64, overrides ...func(*domain.SerialNumber)) *domain.SerialNumber {
	s := &domain.SerialNumber{
		WarehouseID: warehouseID,
		Name:        gofakeit.Regex(`SN[0-9A-F]{10}`),
		Status:      domain.StatusWarehouse,
		PriceInput:  decimal.NewFromFloat(gofakeit.Price(10, 5000)).Round(2),
		DataInput:   time.Now().UTC().Truncate(24 * time.Hour),
	}
	for _, override := range overrides {
		override(s)
	}
	return s
}

// OrderLine is one data row of a generated ORDER sheet
type OrderLine struct {
	Name         string
	Article      string
	Supplier     string
	Manufacturer string
	Warranty     string
	Quantity     string
	SerialNumber string
	PriceInput   string
}

// BuildOrderWorkbook renders lines as an xlsx workbook with an ORDER sheet
// using the Russian column headers.
func BuildOrderWorkbook(tb testing.TB, sheetName string, lines ...OrderLine) []byte {
	tb.Helper()

	file := xlsx.NewFile()
	sheet, err := file.AddSheet(sheetName)
	require.NoError(tb, err)

	header := sheet.AddRow()
	for _, h := range []string{
		domain.ColumnName, domain.ColumnArticle, domain.ColumnSupplier, domain.ColumnManufacturer,
		domain.ColumnWarranty, domain.ColumnQuantity, domain.ColumnSerialNumber, domain.ColumnPriceInput,
	} {
		header.AddCell().SetString(h)
	}

	for _, l := range lines {
		row := sheet.AddRow()
		for _, v := range []string{
			l.Name, l.Article, l.Supplier, l.Manufacturer,
			l.Warranty, l.Quantity, l.SerialNumber, l.PriceInput,
		} {
			row.AddCell().SetString(v)
		}
	}

	var buf bytes.Buffer
	require.NoError(tb, file.Write(&buf))
	return buf.Bytes()
}

// TruncateAllTables empties every warehouse table and resets the ids
func TruncateAllTables(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		"TRUNCATE TABLE serial_number, warehouse, supplier, manufacturer RESTART IDENTITY CASCADE")
	require.NoError(t, err, "truncate")
}

// CountRows returns the number of rows in table, live or not
func CountRows(t *testing.T, pool *pgxpool.Pool, table string) int {
	t.Helper()

	var n int
	err := pool.QueryRow(context.Background(), "SELECT count(*) FROM "+pgx.Identifier{table}.Sanitize()).Scan(&n)
	require.NoError(t, err, "count %s", table)
	return n
}
