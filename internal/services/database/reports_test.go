package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AshutoshKumar0206/CreditReportAnalyzer/internal/models"
)

// testRepo connects to the database named by TEST_DATABASE_URL, skipping the
// test when none is configured.
func testRepo(t *testing.T) *ReportRepository {
	t.Helper()

	databaseURL := os.Getenv("TEST_DATABASE_URL")
	if databaseURL == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database tests")
	}

	db, err := NewFromURL(databaseURL)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	repo := NewReportRepository(db)
	require.NoError(t, repo.CreateTable(context.Background()))

	return repo
}

func sampleReport(name, pan string, score int, balance int64) *models.CreditReport {
	return &models.CreditReport{
		BasicDetails: models.BasicDetails{
			Name:        name,
			Mobile:      "9876543210",
			PAN:         pan,
			CreditScore: score,
		},
		ReportSummary: models.ReportSummary{
			TotalAccounts:  1,
			ActiveAccounts: 1,
			CurrentBalance: balance,
		},
		CreditAccounts: []models.CreditAccount{{
			Type:           "Personal Loan (Installment)",
			Bank:           "HDFC BANK",
			AccountNumber:  "XXXX-XXXX-3456",
			CurrentBalance: balance,
			Status:         models.StatusActive,
		}},
		Addresses:  []models.Address{{Type: models.AddressPermanent, Address: "12 MG ROAD, BANGALORE"}},
		FileName:   "sample.xml",
		UploadDate: time.Now().UTC(),
	}
}

func TestReportRepository_CreateAndGet(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, sampleReport("JOHN DOE", "ABCDE1234F", 762, 50000))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "JOHN DOE", got.BasicDetails.Name)
	assert.Equal(t, int64(50000), got.ReportSummary.CurrentBalance)
	require.Len(t, got.CreditAccounts, 1)
	assert.Equal(t, "XXXX-XXXX-3456", got.CreditAccounts[0].AccountNumber)

	_, err = repo.Delete(ctx, id)
	require.NoError(t, err)
}

func TestReportRepository_GetByID_InvalidID(t *testing.T) {
	repo := testRepo(t)

	_, err := repo.GetByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, models.ErrInvalidReportID)
}

func TestReportRepository_DeleteReturnsRecord(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, sampleReport("DELETE ME", "ZZZZZ9999Z", 600, 100))
	require.NoError(t, err)

	deleted, err := repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "DELETE ME", deleted.BasicDetails.Name)

	_, err = repo.GetByID(ctx, id)
	assert.ErrorIs(t, err, models.ErrReportNotFound)
}

func TestReportRepository_Search(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, sampleReport("SEARCHABLE PERSON", "PQRST4321X", 710, 2500))
	require.NoError(t, err)
	defer func() { _, _ = repo.Delete(ctx, id) }()

	results, err := repo.Search(ctx, "searchable")
	require.NoError(t, err)
	require.NotEmpty(t, results)

	results, err = repo.Search(ctx, "PQRST4321X")
	require.NoError(t, err)
	require.NotEmpty(t, results)

	_, err = repo.Search(ctx, "   ")
	assert.ErrorIs(t, err, models.ErrEmptySearchQuery)
}

func TestReportRepository_ListPagination(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		id, err := repo.Create(ctx, sampleReport("PAGED PERSON", "PAGED0000P", 700, 1000))
		require.NoError(t, err)
		ids = append(ids, id)
	}
	defer func() {
		for _, id := range ids {
			_, _ = repo.Delete(ctx, id)
		}
	}()

	reports, total, err := repo.List(ctx, ListOptions{Page: 1, Limit: 2, SortBy: "uploadDate", Order: "desc"})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(reports), 2)
	assert.GreaterOrEqual(t, total, 3)
}

func TestReportRepository_Statistics(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, sampleReport("STATS PERSON", "STATS0000S", 800, 12345))
	require.NoError(t, err)
	defer func() { _, _ = repo.Delete(ctx, id) }()

	stats, err := repo.Statistics(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, stats.TotalReports, 1)
	assert.GreaterOrEqual(t, stats.CreditScoreDistribution.Excellent, 1)
	assert.GreaterOrEqual(t, stats.TotalBalance, int64(12345))
}
