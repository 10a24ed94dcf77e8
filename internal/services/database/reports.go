// Package database provides database operations for the credit report analyzer.
package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/AshutoshKumar0206/CreditReportAnalyzer/internal/models"
)

// sortColumns whitelists the sortable fields, keyed by their JSON names.
var sortColumns = map[string]string{
	"uploadDate":     "upload_date",
	"name":           "name",
	"creditScore":    "credit_score",
	"currentBalance": "current_balance",
	"fileName":       "file_name",
}

// ListOptions controls pagination and ordering for List.
type ListOptions struct {
	Page   int
	Limit  int
	SortBy string
	Order  string
}

// ReportRepository handles credit report database operations.
//
// The full normalized record is stored as a JSONB document; the identity and
// balance fields used for sorting, search, and statistics are duplicated
// into scalar columns at insert time.
type ReportRepository struct {
	db *DB
}

// NewReportRepository creates a new report repository.
func NewReportRepository(db *DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create inserts a new credit report and returns its generated ID.
func (r *ReportRepository) Create(ctx context.Context, report *models.CreditReport) (string, error) {
	id := uuid.New().String()
	report.ID = id

	document, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	query := `
		INSERT INTO credit_reports (id, name, pan, mobile, credit_score, current_balance, file_name, upload_date, document)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = r.db.ExecContext(ctx, query,
		id,
		report.BasicDetails.Name,
		report.BasicDetails.PAN,
		report.BasicDetails.Mobile,
		report.BasicDetails.CreditScore,
		report.ReportSummary.CurrentBalance,
		report.FileName,
		report.UploadDate,
		document,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create report: %w", err)
	}

	return id, nil
}

// List retrieves reports with pagination and sorting. It returns the page of
// reports and the total number of stored reports.
func (r *ReportRepository) List(ctx context.Context, opts ListOptions) ([]*models.CreditReport, int, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = 10
	}

	column, ok := sortColumns[opts.SortBy]
	if !ok {
		column = "upload_date"
	}
	direction := "DESC"
	if strings.EqualFold(opts.Order, "asc") {
		direction = "ASC"
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM credit_reports").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count reports: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT document
		FROM credit_reports
		ORDER BY %s %s
		LIMIT $1 OFFSET $2`, column, direction)

	rows, err := r.db.QueryContext(ctx, query, opts.Limit, (opts.Page-1)*opts.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	reports, err := scanReports(rows)
	if err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}

// GetByID retrieves a single report by its ID.
func (r *ReportRepository) GetByID(ctx context.Context, id string) (*models.CreditReport, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, models.ErrInvalidReportID
	}

	var document []byte
	err := r.db.QueryRowContext(ctx,
		"SELECT document FROM credit_reports WHERE id = $1", id).Scan(&document)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	return decodeReport(document)
}

// Delete removes a report by its ID and returns the deleted record.
func (r *ReportRepository) Delete(ctx context.Context, id string) (*models.CreditReport, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, models.ErrInvalidReportID
	}

	var document []byte
	err := r.db.QueryRowContext(ctx,
		"DELETE FROM credit_reports WHERE id = $1 RETURNING document", id).Scan(&document)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete report: %w", err)
	}

	return decodeReport(document)
}

// Search finds reports whose applicant name, PAN, or mobile contains the
// query, case-insensitively.
func (r *ReportRepository) Search(ctx context.Context, query string) ([]*models.CreditReport, error) {
	if strings.TrimSpace(query) == "" {
		return nil, models.ErrEmptySearchQuery
	}

	pattern := "%" + query + "%"
	rows, err := r.db.QueryContext(ctx, `
		SELECT document
		FROM credit_reports
		WHERE name ILIKE $1 OR pan ILIKE $1 OR mobile ILIKE $1
		ORDER BY upload_date DESC`, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search reports: %w", err)
	}
	defer rows.Close()

	return scanReports(rows)
}

// Statistics computes the aggregate view over all stored reports.
func (r *ReportRepository) Statistics(ctx context.Context) (*models.Statistics, error) {
	query := fmt.Sprintf(`
		SELECT
			COUNT(*),
			COALESCE(AVG(credit_score), 0),
			COALESCE(SUM(current_balance), 0),
			COUNT(CASE WHEN credit_score >= %d THEN 1 END),
			COUNT(CASE WHEN credit_score >= %d AND credit_score < %d THEN 1 END),
			COUNT(CASE WHEN credit_score < %d THEN 1 END)
		FROM credit_reports`,
		models.ScoreBandExcellent,
		models.ScoreBandGood, models.ScoreBandExcellent,
		models.ScoreBandGood)

	var stats models.Statistics
	var avgScore float64
	err := r.db.QueryRowContext(ctx, query).Scan(
		&stats.TotalReports,
		&avgScore,
		&stats.TotalBalance,
		&stats.CreditScoreDistribution.Excellent,
		&stats.CreditScoreDistribution.Good,
		&stats.CreditScoreDistribution.NeedsImprovement,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute statistics: %w", err)
	}

	stats.AvgCreditScore = int(math.Round(avgScore))
	return &stats, nil
}

// CreateTable creates the credit_reports table if it does not exist.
func (r *ReportRepository) CreateTable(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS credit_reports (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			pan TEXT NOT NULL,
			mobile TEXT NOT NULL,
			credit_score INT NOT NULL,
			current_balance BIGINT NOT NULL,
			file_name TEXT NOT NULL,
			upload_date TIMESTAMPTZ NOT NULL DEFAULT now(),
			document JSONB NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("failed to create credit_reports table: %w", err)
	}
	return nil
}

func scanReports(rows pgx.Rows) ([]*models.CreditReport, error) {
	reports := make([]*models.CreditReport, 0)
	for rows.Next() {
		var document []byte
		if err := rows.Scan(&document); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		report, err := decodeReport(document)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read reports: %w", err)
	}
	return reports, nil
}

func decodeReport(document []byte) (*models.CreditReport, error) {
	var report models.CreditReport
	if err := json.Unmarshal(document, &report); err != nil {
		return nil, fmt.Errorf("failed to decode report document: %w", err)
	}
	return &report, nil
}
