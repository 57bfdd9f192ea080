package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"linkscout-engine/internal/domain"
)

// Search is one configured crawl.
type Search struct {
	SearchTerm        string `yaml:"search_term"`
	Location          string `yaml:"location"`
	Distance          int    `yaml:"distance"`
	Remote            bool   `yaml:"remote"`
	JobType           string `yaml:"job_type"`
	EasyApply         string `yaml:"easy_apply"` // require / exclude / any
	CompanyIDs        []int  `yaml:"company_ids"`
	ExperienceLevel   int    `yaml:"experience_level"`
	MaxAgeHours       int    `yaml:"max_age_hours"`
	ResultsWanted     int    `yaml:"results_wanted"`
	Offset            int    `yaml:"offset"`
	FetchDescription  bool   `yaml:"fetch_description"`
	DescriptionFormat string `yaml:"description_format"` // html / markdown / plain
	Country           string `yaml:"country"`
}

type Config struct {
	App struct {
		DataDir  string `yaml:"data_dir"`
		LogLevel string `yaml:"log_level"`
	} `yaml:"app"`

	Transport struct {
		TimeoutSeconds      int      `yaml:"timeout_seconds"`
		UserAgent           string   `yaml:"user_agent"`
		Proxies             []string `yaml:"proxies"`
		ProxyKeyringAccount string   `yaml:"proxy_keyring_account"`
		RequestsPerSecond   float64  `yaml:"requests_per_second"`
	} `yaml:"transport"`

	Crawl struct {
		PageDelaySeconds     int `yaml:"page_delay_seconds"`
		PageDelayBandSeconds int `yaml:"page_delay_band_seconds"`
	} `yaml:"crawl"`

	Searches []Search `yaml:"searches"`

	Output struct {
		CSVPath string `yaml:"csv_path"`
		SQLite  bool   `yaml:"sqlite"`
	} `yaml:"output"`

	Watch struct {
		Enabled bool   `yaml:"enabled"`
		Cron    string `yaml:"cron"` // robfig/cron spec, e.g. "@every 6h"
	} `yaml:"watch"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

// Criteria maps one configured search onto the crawl input.
func (s Search) Criteria() (domain.SearchCriteria, error) {
	in := domain.SearchCriteria{
		SearchTerm:       s.SearchTerm,
		Location:         s.Location,
		Distance:         s.Distance,
		IsRemote:         s.Remote,
		CompanyIDs:       s.CompanyIDs,
		ExperienceLevel:  s.ExperienceLevel,
		MaxAgeSeconds:    s.MaxAgeHours * 3600,
		ResultsWanted:    s.ResultsWanted,
		Offset:           s.Offset,
		FetchDescription: s.FetchDescription,
		Country:          domain.CountryFromString(s.Country),
	}

	if s.JobType != "" {
		jt := domain.ParseJobType(s.JobType)
		if jt == "" {
			return in, fmt.Errorf("unknown job_type %q", s.JobType)
		}
		in.JobType = jt
	}

	switch s.EasyApply {
	case "", "any":
	case "require":
		v := true
		in.EasyApply = &v
	case "exclude":
		v := false
		in.EasyApply = &v
	default:
		return in, fmt.Errorf("easy_apply must be require, exclude, or any; got %q", s.EasyApply)
	}

	switch s.DescriptionFormat {
	case "", "html":
		in.Format = domain.FormatHTML
	case "markdown":
		in.Format = domain.FormatMarkdown
	case "plain":
		in.Format = domain.FormatPlain
	default:
		return in, fmt.Errorf("unknown description_format %q", s.DescriptionFormat)
	}

	return in, nil
}

func (c Config) Timeout() time.Duration {
	if c.Transport.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.Transport.TimeoutSeconds) * time.Second
}

func (c Config) PageDelay() time.Duration {
	return time.Duration(c.Crawl.PageDelaySeconds) * time.Second
}

func (c Config) PageDelayBand() time.Duration {
	return time.Duration(c.Crawl.PageDelayBandSeconds) * time.Second
}
