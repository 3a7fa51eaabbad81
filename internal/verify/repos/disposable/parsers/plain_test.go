package parsers

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doziebest/email-verifier-application/internal/verify/common/log"
)

func names(t *testing.T, input string) []string {
	t.Helper()
	got, err := ParsePlainList(bytes.NewBufferString(input), "test", log.NewNoopLogger(), time.Unix(1723550000, 0))
	require.NoError(t, err)
	out := make([]string, 0, len(got))
	for _, d := range got {
		out = append(out, d.Name)
	}
	return out
}

func TestParsePlainList_Basics(t *testing.T) {
	input := "\uFEFF# disposable providers\n" +
		"Mailinator.COM   \n" +
		"yopmail.com.#inline comment\n" +
		"\n" +
		"\tSharklasers.com.\n" +
		"*.wild.example.com\n" +
		".root.example.org\n" +
		"mailinator.com   # duplicate\n"

	now := time.Unix(1723550000, 0)
	got, err := ParsePlainList(bytes.NewBufferString(input), "list.txt", log.NewNoopLogger(), now)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "mailinator.com", got[0].Name)
	assert.Equal(t, "yopmail.com", got[1].Name)
	assert.Equal(t, "sharklasers.com", got[2].Name)
	for _, d := range got {
		assert.Equal(t, "list.txt", d.Source)
		assert.True(t, d.AddedAt.Equal(now))
	}
}

func TestParsePlainList_EmptyAndCommentsOnly(t *testing.T) {
	assert.Empty(t, names(t, "\n# only comments\n   # another\n\n"))
}

func TestParsePlainList_SkipsInvalidEntries(t *testing.T) {
	input := "com\nco.uk\nlocalhost\n-bad.com\nuser@mailinator.com\nspace in.com\nbad..com\nok.example\n"
	assert.Equal(t, []string{"ok.example"}, names(t, input))
}

func TestParsePlainList_EmptySourceSkipsEverything(t *testing.T) {
	got, err := ParsePlainList(bytes.NewBufferString("mailinator.com\n"), "", log.NewNoopLogger(), time.Now())
	require.NoError(t, err)
	assert.Empty(t, got)
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestParsePlainList_ReadError(t *testing.T) {
	_, err := ParsePlainList(errReader{}, "s", log.NewNoopLogger(), time.Now())
	require.Error(t, err)
}

func TestParseJSONList(t *testing.T) {
	input := `["Mailinator.com", "yopmail.com", "mailinator.com", "*.wild.com", "com"]`
	got, err := ParseJSONList(bytes.NewBufferString(input), "domains.json", log.NewNoopLogger(), time.Now())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "mailinator.com", got[0].Name)
	assert.Equal(t, "yopmail.com", got[1].Name)

	_, err = ParseJSONList(bytes.NewBufferString(`{"not":"a list"}`), "bad.json", log.NewNoopLogger(), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.json")
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "extra.txt")
	require.NoError(t, os.WriteFile(plain, []byte("trashmail.de\n"), 0o600))
	jsonPath := filepath.Join(dir, "domains.JSON")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`["spam4.me"]`), 0o600))

	got, err := ParseFile(plain, log.NewNoopLogger(), time.Now())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "trashmail.de", got[0].Name)
	assert.Equal(t, plain, got[0].Source)

	got, err = ParseFile(jsonPath, log.NewNoopLogger(), time.Now())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "spam4.me", got[0].Name)

	_, err = ParseFile(filepath.Join(dir, "missing.txt"), log.NewNoopLogger(), time.Now())
	require.Error(t, err)
}
