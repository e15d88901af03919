package policy

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/claimwise/claimwise/internal/model"
	_ "github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
)

var identRE = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// LoadMySQL loads the policy table from MySQL into an in-memory store.
// The connection is closed before returning: the store keeps the
// load-once, read-many lifecycle regardless of backing source.
func LoadMySQL(ctx context.Context, dsn, table string) (*MemoryStore, error) {
	if table == "" {
		table = "policies"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	defer func() { _ = db.Close() }()

	return loadPolicies(ctx, db, table)
}

// loadPolicies reads all policy rows from db. Split out so tests can
// exercise it with a mocked connection.
func loadPolicies(ctx context.Context, db *sql.DB, table string) (*MemoryStore, error) {
	if !identRE.MatchString(table) {
		return nil, fmt.Errorf("invalid policy table name: %q", table)
	}

	query := fmt.Sprintf("SELECT policy_number, coverage_limit, start_date, end_date FROM %s", table)
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query policies: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := map[string]model.PolicyRecord{}
	for rows.Next() {
		var (
			number string
			limit  decimal.Decimal
			start  string
			end    string
		)
		if err := rows.Scan(&number, &limit, &start, &end); err != nil {
			return nil, fmt.Errorf("scan policy row: %w", err)
		}
		records[number] = model.PolicyRecord{
			CoverageLimit: limit,
			StartDate:     start,
			EndDate:       end,
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate policies: %w", err)
	}

	return NewMemoryStore(records), nil
}
