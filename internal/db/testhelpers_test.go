package db

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/roomcull/internal/testutil"
)

// testPool is shared by every test in the package.
var (
	testPool *pgxpool.Pool
	testDSN  string
)

// TestMain starts one PostgreSQL container for the package and applies the
// migrations.
func TestMain(m *testing.M) {
	os.Exit(runWithPostgres(m))
}

func runWithPostgres(m *testing.M) int {
	ctx := context.Background()

	dsn, terminate, err := testutil.StartPostgres(ctx)
	if err != nil {
		log.Printf("postgres unavailable: %v", err)
		return 1
	}
	defer terminate()
	testDSN = dsn

	if _, err := RunMigrations(ctx, testDSN); err != nil {
		log.Printf("running migrations: %v", err)
		return 1
	}

	testPool, err = pgxpool.New(ctx, testDSN)
	if err != nil {
		log.Printf("connecting to test db: %v", err)
		return 1
	}
	defer testPool.Close()

	return m.Run()
}

// setupTestDB returns the shared pool with the marker table emptied.
func setupTestDB(tb testing.TB) *pgxpool.Pool {
	tb.Helper()

	if _, err := testPool.Exec(context.Background(), "TRUNCATE room_markers"); err != nil {
		tb.Fatalf("truncating room_markers: %v", err)
	}
	return testPool
}
