package parsers

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/doziebest/email-verifier-application/internal/verify/common/log"
	"github.com/doziebest/email-verifier-application/internal/verify/domain"
)

// ParseJSONList parses a JSON array of domain strings, the format published
// by the community disposable-email-domains lists. Entries go through the
// same validation as ParsePlainList; the line number reported in debug logs
// is the array index plus one.
func ParseJSONList(r io.Reader, source string, logger log.Logger, now time.Time) ([]domain.DisposableDomain, error) {
	var raw []string
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode %s: %w", source, err)
	}
	b := newBuilder(source, logger, now)
	for i, s := range raw {
		b.add(i+1, s)
	}
	logger.Debug(map[string]any{"source": source, "count": len(b.out)}, "parse_json_list_done")
	return b.out, nil
}
