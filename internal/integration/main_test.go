//go:build integration

package integration

import (
	"context"
	"log"
	"math/rand"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/vishnuvarthan48/biomedical-cms/internal/app"
	"github.com/vishnuvarthan48/biomedical-cms/internal/repositories"
	"github.com/vishnuvarthan48/biomedical-cms/internal/services"
	"github.com/vishnuvarthan48/biomedical-cms/internal/utils"
)

const dbURLEnv = "CMMS_TEST_DB_URL"

var (
	pool  *pgxpool.Pool
	tx    repositories.TxRunner
	audit *services.AuditRecorder
)

// TestMain migrates the target database once and shares one pool across
// the package. Every test works in its own tenant, so runs do not collide.
func TestMain(m *testing.M) {
	utils.InitLogger("master-record-service-integration")

	url := os.Getenv(dbURLEnv)
	if url == "" {
		log.Printf("%s not set; skipping integration tests", dbURLEnv)
		os.Exit(0)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	if err := app.RunMigrations(ctx, url); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	var err error
	pool, err = pgxpool.Connect(ctx, url)
	cancel()
	if err != nil {
		log.Fatalf("connect: %v", err)
	}

	tx = repositories.NewTxRunner(pool)
	audit = services.NewAuditRecorder(repositories.NewAuditLogRepository(pool))

	code := m.Run()
	pool.Close()
	os.Exit(code)
}

func newTenantID() int64 {
	return 1_000_000 + rand.Int63n(1_000_000_000)
}
