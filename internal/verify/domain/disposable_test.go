package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDisposableDomain(t *testing.T) {
	now := time.Unix(1723550000, 0)

	d, err := NewDisposableDomain("  YopMail.com ", " builtin ", now)
	require.NoError(t, err)
	assert.Equal(t, "yopmail.com", d.Name)
	assert.Equal(t, "builtin", d.Source)
	assert.Equal(t, now, d.AddedAt)

	tests := []struct {
		name, domain, source string
		at                   time.Time
	}{
		{"empty name", " ", "builtin", now},
		{"address not domain", "user@yopmail.com", "builtin", now},
		{"empty source", "yopmail.com", "", now},
		{"zero time", "yopmail.com", "builtin", time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDisposableDomain(tt.domain, tt.source, tt.at)
			assert.Error(t, err)
		})
	}
}
