package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string
	Warnings []string
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus everything worth
// telling the operator before a crawl starts.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	if out.App.DataDir == "" {
		out.App.DataDir = "."
	}

	if len(out.Searches) == 0 {
		res.addErr("no searches configured")
	}
	for i, s := range out.Searches {
		if strings.TrimSpace(s.SearchTerm) == "" {
			res.addErr("searches[%d]: search_term is required", i)
		}
		if s.ResultsWanted <= 0 {
			out.Searches[i].ResultsWanted = 15
			res.addWarn("searches[%d]: results_wanted not set, defaulting to 15", i)
		}
		if s.Offset < 0 {
			res.addErr("searches[%d]: offset must be >= 0", i)
		}
		if _, err := s.Criteria(); err != nil {
			res.addErr("searches[%d]: %v", i, err)
		}
	}

	if out.Crawl.PageDelaySeconds < 0 || out.Crawl.PageDelayBandSeconds < 0 {
		res.addErr("crawl delays must be >= 0")
	}
	if out.Crawl.PageDelaySeconds > 0 && out.Crawl.PageDelaySeconds < 2 {
		res.addWarn("crawl.page_delay_seconds is very low (%d) and may trip rate limits", out.Crawl.PageDelaySeconds)
	}

	if out.Transport.RequestsPerSecond < 0 {
		res.addErr("transport.requests_per_second must be >= 0")
	}
	if out.Transport.ProxyKeyringAccount != "" && len(out.Transport.Proxies) == 0 {
		res.addWarn("proxy_keyring_account set but no proxies configured")
	}

	if out.Watch.Enabled && strings.TrimSpace(out.Watch.Cron) == "" {
		out.Watch.Cron = "@every 6h"
	}

	if out.Output.CSVPath == "" && !out.Output.SQLite {
		res.addWarn("no output sink configured; results will only be logged")
	}

	return out, res
}
