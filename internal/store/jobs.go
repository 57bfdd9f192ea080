package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"linkscout-engine/internal/domain"
)

// InsertJobIfNew persists one record, keyed by its site-scoped id. Returns
// whether a row was actually added; repeat sightings are ignored.
func InsertJobIfNew(ctx context.Context, db *sql.DB, j domain.JobRecord) (bool, error) {
	if j.ID == "" {
		return false, errors.New("missing site id")
	}
	if j.Title == "" {
		j.Title = "N/A"
	}
	if j.CompanyName == "" {
		j.CompanyName = "N/A"
	}

	var postedAt any
	if j.PostedAt != nil {
		postedAt = j.PostedAt.Format(time.RFC3339)
	}
	var compMin, compMax any
	currency := ""
	if j.Comp != nil {
		compMin = j.Comp.MinAmount
		compMax = j.Comp.MaxAmount
		currency = j.Comp.Currency
	}

	res, err := db.ExecContext(ctx, `
INSERT OR IGNORE INTO jobs(
  site_id, title, company, company_url, job_url, location, remote,
  posted_at, comp_min, comp_max, currency, apply_method, direct_url,
  description, job_type, job_level, job_function, industry, logo_url,
  detail_error, first_seen
) VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?);`,
		j.ID,
		j.Title,
		j.CompanyName,
		j.CompanyURL,
		j.JobURL,
		j.Location.String(),
		boolToInt(j.IsRemote),
		postedAt,
		compMin,
		compMax,
		currency,
		string(j.ApplyVia),
		j.DirectURL,
		j.Description,
		string(j.JobType),
		j.JobLevel,
		j.JobFunction,
		j.CompanyIndustry,
		j.CompanyLogoURL,
		j.DetailError,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()

	if n == 0 && j.CompanyLogoURL != "" {
		// row existed; backfill a logo discovered on a later crawl
		_, _ = db.ExecContext(ctx, `
UPDATE jobs SET logo_url = ?
WHERE site_id = ? AND logo_url = '';`, j.CompanyLogoURL, j.ID)
	}

	return n > 0, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
