package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/sharpcut-app/barber-marketplace/internal/httperr"
	"github.com/sharpcut-app/barber-marketplace/internal/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn: sqlDB,
	}), &gorm.Config{})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}

	return db, mock
}

func TestCreateBookingIfFreeConflict(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingGormRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "bookings"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	start := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)
	err := repo.CreateBookingIfFree(context.Background(), &models.Booking{
		BarberID:  2,
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
	})

	if !httperr.IsBusiness(err, "time_conflict") {
		t.Fatalf("expected time_conflict, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestCreateBookingIfFreeInserts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingGormRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "bookings"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "bookings"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectCommit()

	start := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)
	b := &models.Booking{
		PublicID:  "pub-42",
		BarberID:  2,
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
	}

	if err := repo.CreateBookingIfFree(context.Background(), b); err != nil {
		t.Fatalf("create: %v", err)
	}

	if b.ID != 42 {
		t.Fatalf("id = %d, want 42", b.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestMoveBookingIfFreeExcludesSelf(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingGormRepository(db)

	mock.ExpectBegin()
	// O próprio booking não conta como conflito
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "bookings"`)).
		WithArgs(
			uint(2), uint(10),
			"pending_payment", "pending_confirmation", "confirmed", "in_progress",
			sqlmock.AnyArg(), sqlmock.AnyArg(),
		).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "bookings"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	start := time.Date(2026, 9, 7, 11, 0, 0, 0, time.UTC)
	b := &models.Booking{
		ID:        10,
		PublicID:  "pub-10",
		BarberID:  2,
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
	}

	if err := repo.MoveBookingIfFree(context.Background(), b); err != nil {
		t.Fatalf("move: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestGetOverrideAbsentReturnsNil(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingGormRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "availability_overrides"`)).
		WillReturnError(gorm.ErrRecordNotFound)

	ov, err := repo.GetOverride(context.Background(), 2, "2026-09-07")
	if err != nil {
		t.Fatalf("absent override must not be an error, got %v", err)
	}
	if ov != nil {
		t.Fatalf("expected nil override, got %+v", ov)
	}
}

func TestHasReview(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingGormRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "reviews"`)).
		WithArgs(uint(10)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	has, err := repo.HasReview(context.Background(), 10)
	if err != nil {
		t.Fatalf("has review: %v", err)
	}
	if !has {
		t.Fatal("expected existing review")
	}
}

func TestListBlocksForIncludesRecurring(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingGormRepository(db)

	rows := sqlmock.NewRows([]string{"id", "barber_id", "date", "start_time", "end_time", "type", "is_recurring"}).
		AddRow(1, 2, "2026-09-07", "12:00", "13:00", models.BlockBreak, false).
		AddRow(2, 2, "2026-08-31", "16:00", "17:00", models.BlockBreak, true)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "schedule_blocks"`)).
		WithArgs(uint(2), "2026-09-07").
		WillReturnRows(rows)

	blocks, err := repo.ListBlocksFor(context.Background(), 2, "2026-09-07")
	if err != nil {
		t.Fatalf("list blocks: %v", err)
	}
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if !blocks[1].IsRecurring {
		t.Fatal("recurring block must come back")
	}
}
