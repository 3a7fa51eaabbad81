package parsers

import (
	"bufio"
	"io"
	"strings"
	"time"

	"github.com/doziebest/email-verifier-application/internal/verify/common/log"
	"github.com/doziebest/email-verifier-application/internal/verify/domain"
)

// ParsePlainList parses a newline-delimited list of disposable domains.
//
// Behavior:
// - Supports comments starting with '#' (inline or whole-line)
// - Trims whitespace, lower-cases and removes trailing dots
// - Skips blank lines, wildcard entries and invalid domains
// - De-duplicates while preserving first-seen order
// - Each entry is attributed to source and stamped with now
func ParsePlainList(r io.Reader, source string, logger log.Logger, now time.Time) ([]domain.DisposableDomain, error) {
	scanner := bufio.NewScanner(r)
	b := newBuilder(source, logger, now)

	logger.Debug(map[string]any{"source": source}, "parse_plain_list_start")
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimPrefix(scanner.Text(), "\uFEFF")

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if idx := strings.IndexByte(trimmed, '#'); idx >= 0 {
			trimmed = strings.TrimSpace(trimmed[:idx])
		}
		b.add(lineNum, trimmed)
	}
	if err := scanner.Err(); err != nil {
		logger.Debug(map[string]any{"source": source, "error": err.Error()}, "parse_plain_list_scan_error")
		return nil, err
	}
	logger.Debug(map[string]any{"source": source, "count": len(b.out)}, "parse_plain_list_done")
	return b.out, nil
}

// builder accumulates validated, de-duplicated entries for one source.
type builder struct {
	source string
	logger log.Logger
	now    time.Time
	seen   map[string]struct{}
	out    []domain.DisposableDomain
}

func newBuilder(source string, logger log.Logger, now time.Time) *builder {
	return &builder{
		source: source,
		logger: logger,
		now:    now,
		seen:   make(map[string]struct{}),
		out:    make([]domain.DisposableDomain, 0, 256),
	}
}

func (b *builder) add(line int, raw string) {
	if isWildcardEntry(raw) {
		b.logger.Debug(map[string]any{"line": line, "raw": raw}, "skip_wildcard")
		return
	}
	name := normalizeEntry(raw)
	if !isValidDomain(name) {
		b.logger.Debug(map[string]any{"line": line, "raw": raw, "name": name}, "skip_invalid_domain")
		return
	}
	if _, ok := b.seen[name]; ok {
		b.logger.Debug(map[string]any{"line": line, "name": name}, "skip_duplicate")
		return
	}
	d, err := domain.NewDisposableDomain(name, b.source, b.now)
	if err != nil {
		b.logger.Debug(map[string]any{"line": line, "name": name, "error": err.Error()}, "skip_constructor_error")
		return
	}
	b.seen[name] = struct{}{}
	b.out = append(b.out, d)
}
