package classifier

import (
	"regexp"
	"strings"

	"github.com/doziebest/email-verifier-application/internal/verify/common/clock"
	"github.com/doziebest/email-verifier-application/internal/verify/common/log"
	"github.com/doziebest/email-verifier-application/internal/verify/domain"
)

// DefaultBatchLimit is the maximum number of addresses classified per batch.
const DefaultBatchLimit = 100

// addressPattern is deliberately permissive: local part, one '@', and a
// domain ending in an alphabetic label of two or more letters. RE2's '$'
// only matches at the end of the text, so trailing newlines are rejected.
var addressPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// DisposableSet reports exact, case-insensitive membership in the disposable list.
type DisposableSet interface {
	Contains(domain string) bool
}

// Classifier assigns each address a Verdict. It holds no mutable state and is
// safe for concurrent use.
type Classifier struct {
	set    DisposableSet
	clock  clock.Clock
	logger log.Logger
}

// Options configures New.
type Options struct {
	Set    DisposableSet
	Clock  clock.Clock
	Logger log.Logger
}

// New constructs a Classifier. A nil clock uses wall time; a nil logger discards.
func New(opts Options) *Classifier {
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}
	if opts.Logger == nil {
		opts.Logger = log.NewNoopLogger()
	}
	return &Classifier{set: opts.Set, clock: opts.Clock, logger: opts.Logger}
}

// Classify returns the verdict for a single address. The input is not trimmed
// or normalized; the stored address is exactly what was passed in.
func (c *Classifier) Classify(address string) domain.Verdict {
	now := c.clock.Now()
	if !addressPattern.MatchString(address) {
		return domain.NewVerdict(address, false, "", false, now)
	}
	_, host, _ := strings.Cut(address, "@")
	host = strings.ToLower(host)
	disposable := c.set != nil && c.set.Contains(host)
	return domain.NewVerdict(address, true, host, disposable, now)
}

// ClassifyBatch classifies at most limit addresses in input order. A limit of
// zero or less means DefaultBatchLimit. Excess addresses are dropped and
// reported on the returned Batch.
func (c *Classifier) ClassifyBatch(addresses []string, limit int) domain.Batch {
	if limit <= 0 {
		limit = DefaultBatchLimit
	}
	batch := domain.Batch{}
	if len(addresses) > limit {
		batch.Truncated = true
		batch.Dropped = len(addresses) - limit
		c.logger.Warn(map[string]any{
			"received": len(addresses),
			"limit":    limit,
			"dropped":  batch.Dropped,
		}, "batch_truncated")
		addresses = addresses[:limit]
	}
	batch.Verdicts = make(domain.History, 0, len(addresses))
	for _, a := range addresses {
		batch.Verdicts = append(batch.Verdicts, c.Classify(a))
	}
	return batch
}

// Record classifies addresses and returns h extended with their verdicts.
// h itself is not modified.
func (c *Classifier) Record(h domain.History, addresses ...string) domain.History {
	vs := make([]domain.Verdict, 0, len(addresses))
	for _, a := range addresses {
		vs = append(vs, c.Classify(a))
	}
	return h.Append(vs...)
}
