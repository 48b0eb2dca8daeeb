package repositories

import (
	"context"
	"testing"

	"bikerental/internal/domain"
	"bikerental/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

var bikeCols = []string{"id", "model", "color", "location", "rating", "available"}

func TestBikeListAvailableBindsAllThreeOverlapCases(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	rng := domain.DateRange{From: domain.MustParseDate("2024-01-12"), To: domain.MustParseDate("2024-01-13")}
	mock.ExpectQuery(`(?s)FROM bikes.*available = 1.*NOT IN.*from_date BETWEEN \? AND \?.*to_date BETWEEN \? AND \?.*\? >= from_date AND \? <= to_date`).
		WithArgs("2024-01-12", "2024-01-13", "2024-01-12", "2024-01-13", "2024-01-12", "2024-01-13").
		WillReturnRows(sqlmock.NewRows(bikeCols).
			AddRow(1, "Cannondale", "red", "Centro", 4.5, true).
			AddRow(3, "Trek", "blue", "Norte", 0.0, true))

	bikes, err := BikeRepository{DB: db}.ListAvailable(context.Background(), rng)
	if err != nil {
		t.Fatalf("ListAvailable error: %v", err)
	}
	if len(bikes) != 2 || bikes[0].ID != 1 || bikes[1].Model != "Trek" || bikes[0].Rating != 4.5 {
		t.Fatalf("unexpected bikes %+v", bikes)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBikeGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM bikes WHERE id=\\?").WithArgs(9).
		WillReturnRows(sqlmock.NewRows(bikeCols))

	_, err = BikeRepository{DB: db}.GetByID(context.Background(), 9)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestBikeUpdateOnlyTouchesPresentFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	off := false
	loc := " Sur "
	mock.ExpectExec(`UPDATE bikes SET location=\?, available=\? WHERE id=\?`).
		WithArgs("Sur", false, 4).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := (BikeRepository{DB: db}).Update(context.Background(), 4, models.BikeUpdate{Location: &loc, Available: &off}); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if err := (BikeRepository{DB: db}).Update(context.Background(), 4, models.BikeUpdate{}); err != nil {
		t.Fatalf("empty Update should be a no-op, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBikeCreateAndDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO bikes").
		WithArgs("Trek", "blue", "Norte", 0.0, true).
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectExec("DELETE FROM bikes WHERE id=\\?").WithArgs(12).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM bikes WHERE id=\\?").WithArgs(12).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := BikeRepository{DB: db}
	b, err := repo.Create(context.Background(), models.Bike{Model: "Trek", Color: "blue", Location: "Norte", Available: true})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if b.ID != 12 {
		t.Fatalf("expected id 12, got %d", b.ID)
	}
	if err := repo.Delete(context.Background(), 12); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := repo.Delete(context.Background(), 12); !domain.IsNotFound(err) {
		t.Fatalf("second delete should be NotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
