package policy

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
)

func TestLoadPolicies(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer func() { _ = db.Close() }()

	rows := sqlmock.NewRows([]string{"policy_number", "coverage_limit", "start_date", "end_date"}).
		AddRow("P100", "10000.00", "2024-01-01", "2024-12-31").
		AddRow("P200", "2500.50", "2023-06-01", "2024-05-31")

	mock.ExpectQuery("SELECT policy_number, coverage_limit, start_date, end_date FROM policies").
		WillReturnRows(rows)

	store, err := loadPolicies(context.Background(), db, "policies")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if store.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", store.Len())
	}

	rec, found := store.Lookup("P100")
	if !found {
		t.Fatal("expected P100")
	}
	if !rec.CoverageLimit.Equal(decimal.RequireFromString("10000.00")) {
		t.Errorf("expected coverage 10000.00, got %s", rec.CoverageLimit)
	}
	if rec.StartDate != "2024-01-01" || rec.EndDate != "2024-12-31" {
		t.Errorf("unexpected dates: %+v", rec)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestLoadPolicies_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("SELECT policy_number").WillReturnError(errors.New("table gone"))

	if _, err := loadPolicies(context.Background(), db, "policies"); err == nil {
		t.Fatal("expected query error")
	}
}

func TestLoadPolicies_RejectsBadTableName(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer func() { _ = db.Close() }()

	if _, err := loadPolicies(context.Background(), db, "policies; DROP TABLE x"); err == nil {
		t.Fatal("expected invalid table name error")
	}
}
