package classifier

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doziebest/email-verifier-application/internal/verify/common/clock"
	"github.com/doziebest/email-verifier-application/internal/verify/common/log"
	"github.com/doziebest/email-verifier-application/internal/verify/domain"
	"github.com/doziebest/email-verifier-application/internal/verify/repos/disposable"
	"github.com/doziebest/email-verifier-application/internal/verify/repos/disposable/bloom"
	"github.com/doziebest/email-verifier-application/internal/verify/repos/disposable/lru"
	"github.com/doziebest/email-verifier-application/internal/verify/repos/disposable/memory"
)

var epoch = time.Date(2024, 8, 13, 12, 0, 0, 0, time.UTC)

func newTestClassifier(t *testing.T) (*Classifier, *clock.MockClock) {
	t.Helper()
	cache, err := lru.New(64)
	require.NoError(t, err)
	repo := disposable.NewRepository(disposable.Options{
		Store:   memory.New(),
		Cache:   cache,
		Factory: bloom.NewFactory(),
		FPRate:  0.01,
	})
	require.NoError(t, repo.Load(disposable.BuiltinEntries(epoch), 1, epoch.Unix()))
	clk := &clock.MockClock{CurrentTime: epoch}
	return New(Options{Set: repo, Clock: clk, Logger: log.NewNoopLogger()}), clk
}

func TestClassify(t *testing.T) {
	c, _ := newTestClassifier(t)

	tests := []struct {
		address    string
		status     domain.Status
		domainName string
	}{
		{"john.doe@gmail.com", domain.StatusValid, "gmail.com"},
		{"test@mailinator.com", domain.StatusDisposable, "mailinator.com"},
		{"User@TempMail.COM", domain.StatusDisposable, "tempmail.com"},
		{"a+tag%x@sub.example.co.uk", domain.StatusValid, "sub.example.co.uk"},
		{"someone@brand-new-throwaway.io", domain.StatusValid, "brand-new-throwaway.io"},
		{"someone@sub.mailinator.com", domain.StatusValid, "sub.mailinator.com"},
		{"user@@gmail.com", domain.StatusInvalidFormat, ""},
		{"a@b@gmail.com", domain.StatusInvalidFormat, ""},
		{"user name@gmail.com", domain.StatusInvalidFormat, ""},
		{" user@gmail.com", domain.StatusInvalidFormat, ""},
		{"user@gmail.com ", domain.StatusInvalidFormat, ""},
		{"user@gmail.com\n", domain.StatusInvalidFormat, ""},
		{"user@gmail.c", domain.StatusInvalidFormat, ""},
		{"user@gmail.c0m", domain.StatusInvalidFormat, ""},
		{"usergmail.com", domain.StatusInvalidFormat, ""},
		{"@gmail.com", domain.StatusInvalidFormat, ""},
		{"user@", domain.StatusInvalidFormat, ""},
		{"", domain.StatusInvalidFormat, ""},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.address), func(t *testing.T) {
			v := c.Classify(tt.address)
			assert.Equal(t, tt.address, v.Address())
			assert.Equal(t, tt.status, v.Status())
			assert.Equal(t, tt.domainName, v.Domain())
			assert.Equal(t, tt.status != domain.StatusInvalidFormat, v.FormatValid())
			assert.Equal(t, tt.status == domain.StatusDisposable, v.Disposable())
			assert.True(t, v.Timestamp().Equal(epoch))
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	c, clk := newTestClassifier(t)
	first := c.Classify("Test@Mailinator.com")
	clk.Advance(time.Hour)
	second := c.Classify("Test@Mailinator.com")

	assert.True(t, first.SameOutcome(second))
	assert.False(t, first.Timestamp().Equal(second.Timestamp()))
}

func TestClassify_NilSetNeverDisposable(t *testing.T) {
	c := New(Options{})
	v := c.Classify("test@mailinator.com")
	assert.Equal(t, domain.StatusValid, v.Status())
	assert.False(t, v.Timestamp().IsZero())
}

func TestClassify_Concurrent(t *testing.T) {
	c, _ := newTestClassifier(t)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.Equal(t, domain.StatusDisposable, c.Classify("x@yopmail.com").Status())
				assert.Equal(t, domain.StatusValid, c.Classify("x@gmail.com").Status())
			}
		}()
	}
	wg.Wait()
}

func TestClassifyBatch_TruncatesToLimitInOrder(t *testing.T) {
	c, _ := newTestClassifier(t)
	addresses := make([]string, 150)
	for i := range addresses {
		addresses[i] = fmt.Sprintf("user%03d@example.com", i)
	}

	batch := c.ClassifyBatch(addresses, 0)
	require.Len(t, batch.Verdicts, DefaultBatchLimit)
	assert.True(t, batch.Truncated)
	assert.Equal(t, 50, batch.Dropped)
	for i, v := range batch.Verdicts {
		assert.Equal(t, addresses[i], v.Address())
	}
}

func TestClassifyBatch_UnderLimit(t *testing.T) {
	c, _ := newTestClassifier(t)
	batch := c.ClassifyBatch([]string{"a@gmail.com", "bad", "b@yopmail.com"}, 10)

	assert.False(t, batch.Truncated)
	assert.Zero(t, batch.Dropped)
	require.Len(t, batch.Verdicts, 3)
	assert.Equal(t, domain.StatusValid, batch.Verdicts[0].Status())
	assert.Equal(t, domain.StatusInvalidFormat, batch.Verdicts[1].Status())
	assert.Equal(t, domain.StatusDisposable, batch.Verdicts[2].Status())

	empty := c.ClassifyBatch(nil, 10)
	assert.Empty(t, empty.Verdicts)
}

func TestRecord_ExtendsWithoutMutating(t *testing.T) {
	c, _ := newTestClassifier(t)
	h := c.Record(nil, "a@gmail.com")
	require.Len(t, h, 1)

	h2 := c.Record(h, "b@mailinator.com", "nope")
	require.Len(t, h, 1)
	require.Len(t, h2, 3)
	assert.Equal(t, "a@gmail.com", h2[0].Address())
	assert.Equal(t, map[domain.Status]int{
		domain.StatusValid:         1,
		domain.StatusDisposable:    1,
		domain.StatusInvalidFormat: 1,
	}, h2.Counts())
}
