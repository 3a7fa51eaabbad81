package setup

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doziebest/email-verifier-application/internal/verify/common/clock"
	"github.com/doziebest/email-verifier-application/internal/verify/common/log"
	"github.com/doziebest/email-verifier-application/internal/verify/config"
	"github.com/doziebest/email-verifier-application/internal/verify/domain"
	"github.com/doziebest/email-verifier-application/internal/verify/repos/disposable"
)

func testConfig() *config.AppConfig {
	cfg := config.DEFAULT_APP_CONFIG
	cfg.DisposableFiles = nil
	return &cfg
}

var epoch = time.Date(2024, 8, 13, 0, 0, 0, 0, time.UTC)

func TestSetupDependencies_InMemory(t *testing.T) {
	deps, err := SetupDependencies(testConfig(), &clock.MockClock{CurrentTime: epoch}, log.NewNoopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = deps.Close() })

	assert.True(t, deps.Disposable.Contains("mailinator.com"))
	assert.Equal(t, uint64(len(disposable.DefaultDomains)), deps.Disposable.RepoStats().Store.Domains)

	report := deps.Verifier.Verify(context.Background(), "user@yopmail.com", nil)
	assert.Equal(t, domain.StatusDisposable, report.Verdict.Status())
	assert.Empty(t, report.Providers)

	mfs, err := deps.Registry.Gather()
	require.NoError(t, err)
	var names []string
	for _, mf := range mfs {
		names = append(names, mf.GetName())
	}
	assert.Contains(t, names, "email_verdicts_total")
}

func TestSetupDependencies_BoltAndExtraLists(t *testing.T) {
	dir := t.TempDir()
	extra := filepath.Join(dir, "extra.txt")
	require.NoError(t, os.WriteFile(extra, []byte("# extra\ntrashmail.de\nmailinator.com\n"), 0o600))

	cfg := testConfig()
	cfg.DisposableDB = filepath.Join(dir, "disposable.db")
	cfg.DisposableFiles = []string{extra}

	deps, err := SetupDependencies(cfg, &clock.MockClock{CurrentTime: epoch}, log.NewNoopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = deps.Close() })

	assert.True(t, deps.Disposable.Contains("trashmail.de"))
	assert.True(t, deps.Disposable.Contains("TempMail.com"))
	assert.False(t, deps.Disposable.Contains("gmail.com"))

	stats := deps.Disposable.RepoStats().Store
	assert.Equal(t, uint64(21), stats.Domains)
	assert.Equal(t, uint64(epoch.Unix()), stats.Version)
}

func TestSetupDependencies_MissingListFile(t *testing.T) {
	cfg := testConfig()
	cfg.DisposableFiles = []string{filepath.Join(t.TempDir(), "missing.txt")}
	_, err := SetupDependencies(cfg, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to build disposable set")
}

func TestBuildProviders_RegistersAll(t *testing.T) {
	client := BuildProviders(testConfig(), nil, log.NewNoopLogger())
	for _, name := range domain.Providers {
		_, ok := client.Provider(name)
		assert.True(t, ok, name)
	}
}
