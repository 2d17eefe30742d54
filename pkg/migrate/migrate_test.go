package migrate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lakaymarket/storefront-backend/pkg/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestEmbeddedMigrationsValidate(t *testing.T) {
	for _, dir := range []string{"migrations/postgres", "migrations/sqlite"} {
		count, err := ValidateDir(dir)
		if err != nil {
			t.Fatalf("ValidateDir(%s): %v", dir, err)
		}
		if count != 3 {
			t.Fatalf("expected 3 migrations in %s, got %d", dir, count)
		}
	}
}

func TestPostgresMigrationsContainSchemas(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "postgres", "*.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	var all strings.Builder
	for _, m := range matches {
		b, err := os.ReadFile(m)
		if err != nil {
			t.Fatalf("read %s: %v", m, err)
		}
		all.Write(b)
	}
	content := all.String()

	for _, sub := range []string{
		"CREATE TABLE IF NOT EXISTS sellers",
		"CREATE TABLE IF NOT EXISTS products",
		"tags TEXT[] NOT NULL DEFAULT '{}'",
		"CREATE TABLE IF NOT EXISTS product_images",
		"CREATE TABLE IF NOT EXISTS product_price_tiers",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_product_price_tiers_product_min_qty",
	} {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestRunAppliesSQLiteMigrations(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	defer sqlDB.Close()

	ctx := context.Background()
	if err := Run(ctx, sqlDB, config.DriverSQLite, "up"); err != nil {
		t.Fatalf("Run up: %v", err)
	}
	version, err := Version(sqlDB, config.DriverSQLite)
	if err != nil {
		t.Fatalf("Version: %v", err)
	}
	if version != 20260301090200 {
		t.Fatalf("unexpected version %d", version)
	}
	for _, table := range []string{"sellers", "products", "product_images", "product_price_tiers"} {
		if !conn.Migrator().HasTable(table) {
			t.Fatalf("expected table %s", table)
		}
	}

	if err := MigrateToVersion(ctx, sqlDB, config.DriverSQLite, "20260301090000"); err != nil {
		t.Fatalf("MigrateToVersion: %v", err)
	}
	if conn.Migrator().HasTable("products") {
		t.Fatal("products should be dropped after migrating down")
	}
}

func TestRunRejectsUnknownDriver(t *testing.T) {
	if _, _, err := dialectFor("mysql"); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC)

	path, err := CreateSQLMigration(dir, "Add Seller Badges!", now)
	if err != nil {
		t.Fatalf("CreateSQLMigration: %v", err)
	}
	if filepath.Base(path) != "20260302083000_add_seller_badges.sql" {
		t.Fatalf("unexpected filename %s", filepath.Base(path))
	}
	if _, err := CreateSQLMigration(dir, "add seller badges", now); err == nil {
		t.Fatal("expected duplicate migration error")
	}
	if count, err := ValidateDir(dir); err != nil || count != 1 {
		t.Fatalf("created migration should validate, count=%d err=%v", count, err)
	}
	if _, err := CreateSQLMigration(dir, "!!!", now); err == nil {
		t.Fatal("expected error for empty sanitized name")
	}
}

func TestValidateDirRejectsMisorderedMarkers(t *testing.T) {
	dir := t.TempDir()
	body := "-- +goose Down\nDROP TABLE x;\n-- +goose Up\nCREATE TABLE x (id INT);\n"
	if err := os.WriteFile(filepath.Join(dir, "20260101000000_bad.sql"), []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := ValidateDir(dir); err == nil {
		t.Fatal("expected marker order error")
	}
}
