// Package export flattens JobRecords for downstream consumers.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"linkscout-engine/internal/domain"
)

var csvHeader = []string{
	"id", "title", "company", "company_url", "job_url", "city", "state",
	"country", "remote", "posted_at", "min_amount", "max_amount", "currency",
	"apply_method", "direct_url", "job_type", "job_level", "job_function",
	"industry", "logo_url", "emails", "description", "detail_error",
}

func WriteCSV(w io.Writer, jobs []domain.JobRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, j := range jobs {
		if err := cw.Write(row(j)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteCSVFile(path string, jobs []domain.JobRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, jobs); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func row(j domain.JobRecord) []string {
	postedAt := ""
	if j.PostedAt != nil {
		postedAt = j.PostedAt.Format(time.DateOnly)
	}
	minAmount, maxAmount, currency := "", "", ""
	if j.Comp != nil {
		minAmount = fmt.Sprintf("%.2f", j.Comp.MinAmount)
		maxAmount = fmt.Sprintf("%.2f", j.Comp.MaxAmount)
		currency = j.Comp.Currency
	}
	return []string{
		j.ID,
		j.Title,
		j.CompanyName,
		j.CompanyURL,
		j.JobURL,
		j.Location.City,
		j.Location.State,
		j.Location.Country.String(),
		fmt.Sprintf("%t", j.IsRemote),
		postedAt,
		minAmount,
		maxAmount,
		currency,
		string(j.ApplyVia),
		j.DirectURL,
		string(j.JobType),
		j.JobLevel,
		j.JobFunction,
		j.CompanyIndustry,
		j.CompanyLogoURL,
		strings.Join(j.Emails, "; "),
		j.Description,
		j.DetailError,
	}
}
