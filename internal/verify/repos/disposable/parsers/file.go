package parsers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/doziebest/email-verifier-application/internal/verify/common/log"
	"github.com/doziebest/email-verifier-application/internal/verify/domain"
)

// ParseFile loads a list file, choosing the JSON parser for ".json" files and
// the plain parser otherwise. The file path is used as the entries' source.
func ParseFile(path string, logger log.Logger, now time.Time) ([]domain.DisposableDomain, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open list %s: %w", path, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ParseJSONList(f, path, logger, now)
	}
	entries, err := ParsePlainList(f, path, logger, now)
	if err != nil {
		return nil, fmt.Errorf("parse list %s: %w", path, err)
	}
	return entries, nil
}
