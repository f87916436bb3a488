package repository_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dengue-surveillance-api/internal/models"
	"github.com/dengue-surveillance-api/internal/repository"
)

func sightingRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "user_name", "latitude", "longitude",
		"category", "source", "description", "report_date", "created_at", "updated_at",
	})
}

func TestSightingListClampsPagination(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New failed: %v", err)
	}
	defer db.Close()

	now := time.Now()
	rows := sightingRows().
		AddRow(int64(2), int64(1), "Operador", -23.55, -46.63, "pneu", "inspection", nil, "2026-08-30", now, now).
		AddRow(int64(1), nil, nil, -23.56, -46.64, "balde-tambor", "citizen-report", "quintal", "2026-08-29", now, now)

	mock.ExpectQuery(`SELECT (.+) FROM sightings s LEFT JOIN users u ON s.user_id = u.id ORDER BY s.created_at DESC LIMIT \$1 OFFSET \$2`).
		WithArgs(repository.MaxListLimit, 0).
		WillReturnRows(rows)

	repo := repository.NewSightingRepo(db)
	sightings, err := repo.List(context.Background(), "", repository.ListOptions{Limit: 9999, Offset: -5})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(sightings) != 2 {
		t.Fatalf("Expected 2 sightings, got %d", len(sightings))
	}
	if sightings[0].ID != 2 {
		t.Errorf("Expected newest first, got id %d", sightings[0].ID)
	}
	if sightings[0].UserName == nil || *sightings[0].UserName != "Operador" {
		t.Errorf("Expected joined user name, got %v", sightings[0].UserName)
	}
	if sightings[1].UserID != nil {
		t.Error("Expected nil user id for an orphaned sighting")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestSightingListCategoryFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New failed: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM sightings s LEFT JOIN users u ON s.user_id = u.id WHERE s.category = \$1 ORDER BY s.created_at DESC LIMIT \$2 OFFSET \$3`).
		WithArgs("pneu", repository.DefaultListLimit, 0).
		WillReturnRows(sightingRows())

	repo := repository.NewSightingRepo(db)
	sightings, err := repo.List(context.Background(), "pneu", repository.ListOptions{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(sightings) != 0 {
		t.Errorf("Expected empty result, got %d", len(sightings))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestSightingGetByIDAbsent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New failed: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM sightings s LEFT JOIN users u ON s.user_id = u.id WHERE s.id = \$1`).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	repo := repository.NewSightingRepo(db)
	s, err := repo.GetByID(context.Background(), 404)
	if err != nil {
		t.Fatalf("Expected no error for an absent row, got %v", err)
	}
	if s != nil {
		t.Errorf("Expected nil sighting, got %+v", s)
	}
}

func TestSightingCreateFillsServerFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New failed: %v", err)
	}
	defer db.Close()

	userID := int64(7)
	now := time.Now()
	mock.ExpectQuery(`INSERT INTO sightings \(user_id, latitude, longitude, category, source, description, report_date\) VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, \$7\) RETURNING id, created_at, updated_at`).
		WithArgs(&userID, -23.55, -46.63, "pneu", "inspection", nil, "2026-08-30").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(11), now, now))

	repo := repository.NewSightingRepo(db)
	s := &models.Sighting{
		UserID:     &userID,
		Latitude:   -23.55,
		Longitude:  -46.63,
		Category:   "pneu",
		Source:     "inspection",
		ReportDate: "2026-08-30",
	}
	if err := repo.Create(context.Background(), s); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if s.ID != 11 {
		t.Errorf("Expected assigned id 11, got %d", s.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestSightingUpdateSparseSet(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New failed: %v", err)
	}
	defer db.Close()

	// Only the patched column appears in the SET clause
	mock.ExpectExec(`UPDATE sightings SET category = \$1, updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs("pneu", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := repository.NewSightingRepo(db)
	category := "pneu"
	rows, err := repo.Update(context.Background(), 7, &models.SightingPatch{Category: &category})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if rows != 1 {
		t.Errorf("Expected 1 row affected, got %d", rows)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestSightingUpdateAbsentRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New failed: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`UPDATE sightings SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := repository.NewSightingRepo(db)
	category := "pneu"
	rows, err := repo.Update(context.Background(), 404, &models.SightingPatch{Category: &category})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if rows != 0 {
		t.Errorf("Expected 0 rows affected, got %d", rows)
	}
}

func TestSightingDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New failed: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`DELETE FROM sightings WHERE id = \$1`).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM sightings WHERE id = \$1`).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := repository.NewSightingRepo(db)

	rows, err := repo.Delete(context.Background(), 9)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if rows != 1 {
		t.Errorf("Expected 1 row affected, got %d", rows)
	}

	rows, err = repo.Delete(context.Background(), 9)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if rows != 0 {
		t.Errorf("Expected 0 rows affected on second delete, got %d", rows)
	}
}
