package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkscout-engine/internal/domain"
)

func openTest(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestInsertJobIfNew(t *testing.T) {
	db := openTest(t)
	ctx := context.Background()

	job := domain.JobRecord{
		ID:          "li-42",
		Title:       "Software Engineer",
		CompanyName: "Acme Corp",
		JobURL:      "https://www.linkedin.com/jobs/view/42",
		ApplyVia:    domain.ApplyExternal,
	}

	added, err := InsertJobIfNew(ctx, db.Pool, job)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = InsertJobIfNew(ctx, db.Pool, job)
	require.NoError(t, err)
	assert.False(t, added)

	var count int
	require.NoError(t, db.Pool.QueryRow(`SELECT COUNT(*) FROM jobs`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestInsertJobRequiresID(t *testing.T) {
	db := openTest(t)
	_, err := InsertJobIfNew(context.Background(), db.Pool, domain.JobRecord{Title: "x"})
	assert.Error(t, err)
}

func TestInsertJobBackfillsLogo(t *testing.T) {
	db := openTest(t)
	ctx := context.Background()

	job := domain.JobRecord{ID: "li-7", Title: "Analyst", CompanyName: "Initech", JobURL: "u"}
	_, err := InsertJobIfNew(ctx, db.Pool, job)
	require.NoError(t, err)

	job.CompanyLogoURL = "https://media.licdn.com/initech.png"
	added, err := InsertJobIfNew(ctx, db.Pool, job)
	require.NoError(t, err)
	assert.False(t, added)

	var logo string
	require.NoError(t, db.Pool.QueryRow(`SELECT logo_url FROM jobs WHERE site_id = ?`, "li-7").Scan(&logo))
	assert.Equal(t, "https://media.licdn.com/initech.png", logo)
}

func TestInsertJobFallsBackToNA(t *testing.T) {
	db := openTest(t)
	_, err := InsertJobIfNew(context.Background(), db.Pool, domain.JobRecord{ID: "li-9", JobURL: "u"})
	require.NoError(t, err)

	var title, company string
	require.NoError(t, db.Pool.QueryRow(`SELECT title, company FROM jobs WHERE site_id = ?`, "li-9").Scan(&title, &company))
	assert.Equal(t, "N/A", title)
	assert.Equal(t, "N/A", company)
}
