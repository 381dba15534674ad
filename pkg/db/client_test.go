package db

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/angelmondragon/shopfloor/pkg/config"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type testModel struct {
	ID   int
	Name string `gorm:"uniqueIndex"`
}

func newTestClient(t *testing.T) *Client {
	t.Helper()
	cfg := config.DBConfig{
		Driver: config.DriverSQLite,
		DSN:    "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	}
	client, err := New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	if err := client.DB().AutoMigrate(&testModel{}); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return client
}

func TestWithTx_CommitsAndRollbacks(t *testing.T) {
	client := newTestClient(t)
	db := client.DB()

	ctx := context.Background()
	if err := client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(&testModel{Name: "committed"}).Error
	}); err != nil {
		t.Fatalf("WithTx commit failed: %v", err)
	}

	var count int64
	if err := db.Model(&testModel{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 record, got %d", count)
	}

	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&testModel{Name: "rolled"}).Error; err != nil {
			return err
		}
		return errors.New("boom")
	})
	if err == nil {
		t.Fatal("expected WithTx to return an error")
	}
	if err := db.Model(&testModel{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed after rollback: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected rollback to leave 1 record, got %d", count)
	}
}

func TestWithTx_RollbackFailureKeepsOriginalError(t *testing.T) {
	client := newTestClient(t)
	boom := errors.New("boom")

	err := client.WithTx(context.Background(), func(tx *gorm.DB) error {
		if err := tx.Rollback().Error; err != nil {
			t.Fatalf("manual rollback failed: %v", err)
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected original error to survive, got %v", err)
	}
	if !errors.Is(err, sql.ErrTxDone) {
		t.Fatalf("expected rollback failure to be attached, got %v", err)
	}
}

func TestIsUniqueViolation_SQLite(t *testing.T) {
	client := newTestClient(t)
	db := client.DB()

	if err := db.Create(&testModel{Name: "dup"}).Error; err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	err := db.Create(&testModel{Name: "dup"}).Error
	if err == nil {
		t.Fatal("expected duplicate insert to fail")
	}
	if !IsUniqueViolation(err, "") {
		t.Fatalf("expected unique violation, got %v", err)
	}
	if IsUniqueViolation(errors.New("other"), "") {
		t.Fatal("plain errors are not unique violations")
	}
}

func TestPing(t *testing.T) {
	client := newTestClient(t)
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected ping error: %v", err)
	}
}

func TestNew_RejectsUnknownDriver(t *testing.T) {
	_, err := New(context.Background(), config.DBConfig{Driver: "oracle", DSN: "x"}, nil)
	if err == nil {
		t.Fatal("expected unknown driver to fail")
	}
}
