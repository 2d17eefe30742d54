package sellers

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lakaymarket/storefront-backend/pkg/config"
	"github.com/lakaymarket/storefront-backend/pkg/db/models"
	pkgerrors "github.com/lakaymarket/storefront-backend/pkg/errors"
	"github.com/lakaymarket/storefront-backend/pkg/migrate"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	if err := migrate.Run(context.Background(), sqlDB, config.DriverSQLite, "up"); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return conn
}

func TestRepositoryListAllAndFind(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	rating := 4.2
	second := &models.Seller{Name: "Second", CreatedAt: base.Add(time.Hour), Verified: true, Rating: &rating}
	first := &models.Seller{Name: "First", CreatedAt: base}
	for _, s := range []*models.Seller{second, first} {
		if err := repo.Create(ctx, s); err != nil {
			t.Fatalf("create seller: %v", err)
		}
	}

	sellers, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(sellers) != 2 || sellers[0].Name != "First" {
		t.Fatalf("unexpected order %+v", sellers)
	}

	found, err := repo.FindByID(ctx, second.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if !found.Verified || found.Rating == nil || *found.Rating != 4.2 {
		t.Fatalf("unexpected seller %+v", found)
	}

	if _, err := repo.FindByID(ctx, uuid.New()); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
