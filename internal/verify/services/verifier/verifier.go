package verifier

import (
	"context"

	"github.com/doziebest/email-verifier-application/internal/verify/common/log"
	"github.com/doziebest/email-verifier-application/internal/verify/domain"
)

// Classifier assigns verdicts to addresses.
type Classifier interface {
	Classify(address string) domain.Verdict
	ClassifyBatch(addresses []string, limit int) domain.Batch
}

// ProviderClient queries the external verification providers.
type ProviderClient interface {
	VerifyAll(ctx context.Context, address string, creds domain.Credentials) []domain.ProviderResult
}

// Service combines the classifier with the external providers.
//   - Verify: one address, classifier plus every provider with a credential
//   - VerifyBatch: bounded list, classifier only
type Service struct {
	classifier  Classifier
	providers   ProviderClient
	credentials domain.Credentials
	bulkLimit   int
	logger      log.Logger
	metrics     *Metrics
}

// Options configures New.
type Options struct {
	Classifier Classifier
	Providers  ProviderClient
	// Credentials are the server-side defaults; per-call credentials override them.
	Credentials domain.Credentials
	BulkLimit   int
	Logger      log.Logger
	Metrics     *Metrics
}

// New constructs a Service. A nil Providers client disables external checks.
func New(opts Options) *Service {
	if opts.Logger == nil {
		opts.Logger = log.NewNoopLogger()
	}
	return &Service{
		classifier:  opts.Classifier,
		providers:   opts.Providers,
		credentials: opts.Credentials,
		bulkLimit:   opts.BulkLimit,
		logger:      opts.Logger,
		metrics:     opts.Metrics,
	}
}

// BulkLimit returns the batch cap applied by VerifyBatch (0 means the classifier default).
func (s *Service) BulkLimit() int { return s.bulkLimit }

// Verify classifies address and, unless the format is invalid, consults every
// provider that has a credential in the merged credentials.
func (s *Service) Verify(ctx context.Context, address string, creds domain.Credentials) domain.Report {
	v := s.classifier.Classify(address)
	s.metrics.observeVerdict(v)
	report := domain.Report{Verdict: v, Providers: []domain.ProviderResult{}}

	if v.Status() == domain.StatusInvalidFormat || s.providers == nil {
		return report
	}

	merged := s.credentials.Merge(creds)
	configured := merged.Configured()
	if len(configured) == 0 {
		return report
	}
	s.logger.Debug(map[string]any{
		"domain":    v.Domain(),
		"providers": configured,
	}, "provider_lookup")

	report.Providers = s.providers.VerifyAll(ctx, address, merged)
	for _, r := range report.Providers {
		s.metrics.observeProvider(r)
		if msg := r.Failure(); msg != "" {
			s.logger.Info(map[string]any{"provider": r.Provider(), "error": msg}, "provider_result_error")
		}
	}
	return report
}

// VerifyBatch classifies addresses in order up to the configured bulk limit.
// External providers are never consulted for batches.
func (s *Service) VerifyBatch(addresses []string) domain.Batch {
	batch := s.classifier.ClassifyBatch(addresses, s.bulkLimit)
	for _, v := range batch.Verdicts {
		s.metrics.observeVerdict(v)
	}
	return batch
}
