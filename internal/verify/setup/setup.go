package setup

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/doziebest/email-verifier-application/internal/verify/common/clock"
	"github.com/doziebest/email-verifier-application/internal/verify/common/log"
	"github.com/doziebest/email-verifier-application/internal/verify/config"
	"github.com/doziebest/email-verifier-application/internal/verify/domain"
	"github.com/doziebest/email-verifier-application/internal/verify/gateways/providers"
	"github.com/doziebest/email-verifier-application/internal/verify/repos/disposable"
	"github.com/doziebest/email-verifier-application/internal/verify/repos/disposable/bloom"
	"github.com/doziebest/email-verifier-application/internal/verify/repos/disposable/bolt"
	"github.com/doziebest/email-verifier-application/internal/verify/repos/disposable/lru"
	"github.com/doziebest/email-verifier-application/internal/verify/repos/disposable/memory"
	"github.com/doziebest/email-verifier-application/internal/verify/repos/disposable/parsers"
	"github.com/doziebest/email-verifier-application/internal/verify/services/classifier"
	"github.com/doziebest/email-verifier-application/internal/verify/services/verifier"
)

// Dependencies holds the wired components shared by the daemon and the CLI.
type Dependencies struct {
	Config     *config.AppConfig
	Disposable disposable.Repository
	Classifier *classifier.Classifier
	Providers  *providers.Client
	Verifier   *verifier.Service
	Registry   *prometheus.Registry

	store disposable.Store
}

// SetupDependencies builds the disposable set, classifier, provider client
// and verifier service from cfg. Call Close when done.
func SetupDependencies(cfg *config.AppConfig, clk clock.Clock, logger log.Logger) (*Dependencies, error) {
	if clk == nil {
		clk = clock.RealClock{}
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}

	repo, store, err := BuildDisposableSet(cfg, clk, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build disposable set: %w", err)
	}

	c := classifier.New(classifier.Options{
		Set:    repo,
		Clock:  clk,
		Logger: logger.With(map[string]any{"component": "classifier"}),
	})

	client := BuildProviders(cfg, nil, logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	svc := verifier.New(verifier.Options{
		Classifier:  c,
		Providers:   client,
		Credentials: cfg.Credentials(),
		BulkLimit:   cfg.BulkLimit,
		Logger:      logger.With(map[string]any{"component": "verifier"}),
		Metrics:     verifier.NewMetrics(reg),
	})

	return &Dependencies{
		Config:     cfg,
		Disposable: repo,
		Classifier: c,
		Providers:  client,
		Verifier:   svc,
		Registry:   reg,
		store:      store,
	}, nil
}

// Close releases the disposable store.
func (d *Dependencies) Close() error {
	if d.store == nil {
		return nil
	}
	return d.store.Close()
}

// BuildDisposableSet loads the built-in list merged with cfg.DisposableFiles
// into a repository backed by bbolt (when cfg.DisposableDB is set) or memory.
func BuildDisposableSet(cfg *config.AppConfig, clk clock.Clock, logger log.Logger) (disposable.Repository, disposable.Store, error) {
	now := clk.Now()
	lists := [][]domain.DisposableDomain{disposable.BuiltinEntries(now)}
	for _, path := range cfg.DisposableFiles {
		entries, err := parsers.ParseFile(path, logger, now)
		if err != nil {
			return nil, nil, err
		}
		logger.Info(map[string]any{"file": path, "domains": len(entries)}, "Disposable list loaded")
		lists = append(lists, entries)
	}
	entries := disposable.Merge(lists...)

	var store disposable.Store
	var err error
	if cfg.DisposableDB != "" {
		store, err = bolt.New(cfg.DisposableDB)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open disposable db: %w", err)
		}
	} else {
		store = memory.New()
	}

	cache, err := lru.New(cfg.DisposableCacheSize)
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("failed to create decision cache: %w", err)
	}

	repo := disposable.NewRepository(disposable.Options{
		Store:   store,
		Cache:   cache,
		Factory: bloom.NewFactory(),
		FPRate:  cfg.DisposableFPRate,
		Logger:  logger.With(map[string]any{"component": "disposable"}),
	})
	if err := repo.Load(entries, uint64(now.Unix()), now.Unix()); err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("failed to load disposable set: %w", err)
	}

	logger.Info(map[string]any{
		"domains":    len(entries),
		"persistent": cfg.DisposableDB != "",
		"cache_size": cfg.DisposableCacheSize,
	}, "Disposable domain set ready")
	return repo, store, nil
}

// BuildProviders creates the provider client for the configured endpoints.
// Credentials are logged only as set or unset.
func BuildProviders(cfg *config.AppConfig, httpClient *http.Client, logger log.Logger) *providers.Client {
	logger.Info(map[string]any{
		"hunter":      log.Redact(cfg.HunterKey),
		"neverbounce": log.Redact(cfg.NeverBounceKey),
		"zerobounce":  log.Redact(cfg.ZeroBounceKey),
		"timeout":     cfg.ProviderTimeout.String(),
	}, "Verification providers configured")

	return providers.NewClient(providers.Options{
		HTTPClient: httpClient,
		Timeout:    cfg.ProviderTimeout,
		Providers: []providers.Provider{
			providers.NewHunter(cfg.HunterURL),
			providers.NewNeverBounce(cfg.NeverBounceURL),
			providers.NewZeroBounce(cfg.ZeroBounceURL),
		},
		Logger: logger.With(map[string]any{"component": "providers"}),
	})
}
