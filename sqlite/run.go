package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pulse"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ pulse.RunService = (*RunService)(nil)

// RunService implements pulse.RunService using SQLite.
type RunService struct {
	db  *DB
	now func() time.Time
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db, now: time.Now}
}

// HashContent computes the xxHash of a snapshot and returns it as hex.
func HashContent(content string) string {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, xxhash.Sum64String(content))
	return hex.EncodeToString(b)
}

// CreateRun stores a run and its records in a single transaction.
func (s *RunService) CreateRun(ctx context.Context, run *pulse.Run, ex *pulse.Extraction) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	run.CreatedAt = s.now().UTC()
	run.MarketCount = len(ex.Market)
	run.NewsCount = len(ex.News)

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, source, content_hash, market_count, news_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.ID, run.Source, run.ContentHash, run.MarketCount, run.NewsCount,
		run.CreatedAt.Format(timeFormat)); err != nil {
		return err
	}

	for i, r := range ex.Market {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO market_records (run_id, position, symbol, stock_position, change_pct)
			VALUES (?, ?, ?, ?, ?)
		`, run.ID, i, r.Symbol, r.StockPosition, r.ChangePct); err != nil {
			return err
		}
	}

	for i, r := range ex.News {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO news_records (run_id, position, timestamp, title, link)
			VALUES (?, ?, ?, ?, ?)
		`, run.ID, i, r.Timestamp, r.Title, r.Link); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindRunByID retrieves a run by ID.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*pulse.Run, error) {
	runs, err := s.FindRuns(ctx, pulse.RunFilter{ID: &id})
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, pulse.Errorf(pulse.ENOTFOUND, "run not found")
	}
	return runs[0], nil
}

// FindRuns retrieves runs matching the filter, newest first.
func (s *RunService) FindRuns(ctx context.Context, filter pulse.RunFilter) ([]*pulse.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source, content_hash, market_count, news_count, created_at FROM runs WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.ContentHash != nil {
		query.WriteString(" AND content_hash = ?")
		args = append(args, *filter.ContentHash)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*pulse.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// FindMarketRecords retrieves the market records of a run in extraction order.
func (s *RunService) FindMarketRecords(ctx context.Context, runID string) ([]pulse.MarketRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT symbol, stock_position, change_pct
		FROM market_records
		WHERE run_id = ?
		ORDER BY position ASC
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []pulse.MarketRecord{}
	for rows.Next() {
		var r pulse.MarketRecord
		if err := rows.Scan(&r.Symbol, &r.StockPosition, &r.ChangePct); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// FindNewsRecords retrieves the news records of a run in extraction order.
func (s *RunService) FindNewsRecords(ctx context.Context, runID string) ([]pulse.NewsRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT timestamp, title, link
		FROM news_records
		WHERE run_id = ?
		ORDER BY position ASC
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []pulse.NewsRecord{}
	for rows.Next() {
		var r pulse.NewsRecord
		if err := rows.Scan(&r.Timestamp, &r.Title, &r.Link); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func scanRun(rows *sql.Rows) (*pulse.Run, error) {
	var run pulse.Run
	var createdAt string

	if err := rows.Scan(&run.ID, &run.Source, &run.ContentHash,
		&run.MarketCount, &run.NewsCount, &createdAt); err != nil {
		return nil, err
	}

	var err error
	run.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}
	return &run, nil
}
