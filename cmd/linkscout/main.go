package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"linkscout-engine/internal/config"
	"linkscout-engine/internal/domain"
	"linkscout-engine/internal/export"
	"linkscout-engine/internal/scrape/linkedin"
	"linkscout-engine/internal/secrets"
	"linkscout-engine/internal/session"
	"linkscout-engine/internal/store"
)

func main() {
	var (
		cfgPath    = flag.String("config", "config.yml", "path to config file")
		watch      = flag.Bool("watch", false, "run on the configured schedule instead of once")
		setProxyPW = flag.String("set-proxy-password", "", "store a proxy password (read from stdin) in the OS keychain under this account, then exit")
	)
	flag.Parse()

	log := newLogger("info")

	if *setProxyPW != "" {
		if err := storeProxyPassword(*setProxyPW); err != nil {
			log.Fatal().Err(err).Msg("storing proxy password failed")
		}
		log.Info().Str("account", *setProxyPW).Msg("proxy password stored")
		return
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *cfgPath).Msg("config load failed")
	}
	cfg, res := config.NormalizeAndValidate(cfg)
	for _, w := range res.Warnings {
		log.Warn().Msg(w)
	}
	if !res.OK() {
		for _, e := range res.Errors {
			log.Error().Msg(e)
		}
		os.Exit(1)
	}

	log = newLogger(cfg.App.LogLevel)

	if err := os.MkdirAll(cfg.App.DataDir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("creating data dir failed")
	}

	proxies, err := resolveProxies(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("proxy setup failed")
	}

	sess, err := session.New(session.Config{
		Timeout:      cfg.Timeout(),
		UserAgent:    cfg.Transport.UserAgent,
		Proxies:      proxies,
		ReqPerSecond: cfg.Transport.RequestsPerSecond,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("session setup failed")
	}

	var db *store.DB
	if cfg.Output.SQLite {
		db, err = store.Open(filepath.Join(cfg.App.DataDir, "linkscout.db"))
		if err != nil {
			log.Fatal().Err(err).Msg("opening store failed")
		}
		defer db.Close()
	}

	if *watch || cfg.Watch.Enabled {
		runWatch(cfg, sess, db, log)
		return
	}

	if err := runAll(context.Background(), cfg, sess, db, log); err != nil {
		os.Exit(1)
	}
}

// runWatch holds a single-instance lock and reruns the crawl on the
// configured cron schedule until interrupted.
func runWatch(cfg config.Config, sess *session.Client, db *store.DB, log zerolog.Logger) {
	lock := flock.New(filepath.Join(cfg.App.DataDir, "linkscout.lock"))
	ok, err := lock.TryLock()
	if err != nil {
		log.Fatal().Err(err).Msg("acquiring instance lock failed")
	}
	if !ok {
		log.Fatal().Msg("another instance is already running against this data dir")
	}
	defer lock.Unlock()

	// One run at a time: a slow crawl must not overlap the next tick or
	// the immediate first run, or they race on the output files.
	run := skipIfRunning(log, func() {
		_ = runAll(context.Background(), cfg, sess, db, log)
	})

	c := cron.New()
	_, err = c.AddFunc(cfg.Watch.Cron, run)
	if err != nil {
		log.Fatal().Err(err).Str("spec", cfg.Watch.Cron).Msg("bad cron spec")
	}
	c.Start()
	log.Info().Str("spec", cfg.Watch.Cron).Msg("watch mode started")

	// populate immediately rather than waiting for the first tick
	go run()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	ctx := c.Stop()
	<-ctx.Done()
	log.Info().Msg("watch mode stopped")
}

// skipIfRunning wraps fn so invocations arriving while one is still in
// flight are dropped instead of queued.
func skipIfRunning(log zerolog.Logger, fn func()) func() {
	var mu sync.Mutex
	return func() {
		if !mu.TryLock() {
			log.Warn().Msg("previous crawl run still in progress, skipping")
			return
		}
		defer mu.Unlock()
		fn()
	}
}

// runAll executes every configured search. Searches are independent
// crawls, so they run concurrently; each one is internally sequential.
func runAll(ctx context.Context, cfg config.Config, sess *session.Client, db *store.DB, log zerolog.Logger) error {
	results := make([][]domain.JobRecord, len(cfg.Searches))

	var g errgroup.Group
	for i, s := range cfg.Searches {
		i, s := i, s
		g.Go(func() error {
			in, err := s.Criteria()
			if err != nil {
				return err
			}
			sc := linkedin.New(sess, linkedin.Config{
				PageDelay:     cfg.PageDelay(),
				PageDelayBand: cfg.PageDelayBand(),
			}, log)
			jobs, err := sc.Search(ctx, in)
			if err != nil {
				// partial results are still worth keeping
				log.Error().Err(err).Str("search_term", s.SearchTerm).Msg("crawl ended early")
			}
			results[i] = jobs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("crawl run failed")
		return err
	}

	var all []domain.JobRecord
	for _, r := range results {
		all = append(all, r...)
	}
	log.Info().Int("jobs", len(all)).Msg("crawl run complete")

	if cfg.Output.CSVPath != "" {
		if err := export.WriteCSVFile(cfg.Output.CSVPath, all); err != nil {
			log.Error().Err(err).Msg("csv export failed")
			return err
		}
		log.Info().Str("path", cfg.Output.CSVPath).Msg("csv written")
	}

	if db != nil {
		added := 0
		for _, j := range all {
			ok, err := store.InsertJobIfNew(ctx, db.Pool, j)
			if err != nil {
				log.Error().Err(err).Str("id", j.ID).Msg("store insert failed")
				continue
			}
			if ok {
				added++
			}
		}
		log.Info().Int("added", added).Msg("store updated")
	}

	return nil
}

// resolveProxies fills in keychain-held passwords for proxies configured
// with a username only.
func resolveProxies(cfg config.Config) ([]string, error) {
	if cfg.Transport.ProxyKeyringAccount == "" {
		return cfg.Transport.Proxies, nil
	}
	pw, err := secrets.GetProxyPassword(cfg.Transport.ProxyKeyringAccount)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(cfg.Transport.Proxies))
	for _, p := range cfg.Transport.Proxies {
		u, err := url.Parse(p)
		if err != nil {
			return nil, fmt.Errorf("bad proxy %q: %w", p, err)
		}
		if u.User != nil {
			if _, has := u.User.Password(); !has {
				u.User = url.UserPassword(u.User.Username(), pw)
			}
		}
		out = append(out, u.String())
	}
	return out, nil
}

func storeProxyPassword(account string) error {
	fmt.Fprint(os.Stderr, "password: ")
	sc := bufio.NewScanner(os.Stdin)
	if !sc.Scan() {
		return fmt.Errorf("reading password: %w", sc.Err())
	}
	return secrets.SetProxyPassword(account, strings.TrimSpace(sc.Text()))
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().Timestamp().Logger()
}
