package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleHistory() History {
	return History{
		NewVerdict("bad", false, "", false, at),
		NewVerdict("a@tempmail.com", true, "tempmail.com", true, at),
		NewVerdict("b@gmail.com", true, "gmail.com", false, at),
		NewVerdict("c@gmail.com", true, "gmail.com", false, at),
	}
}

func TestHistory_AppendDoesNotAlias(t *testing.T) {
	base := make(History, 0, 10)
	base = base.Append(NewVerdict("a@gmail.com", true, "gmail.com", false, at))

	one := base.Append(NewVerdict("b@gmail.com", true, "gmail.com", false, at))
	two := base.Append(NewVerdict("c@gmail.com", true, "gmail.com", false, at))

	assert.Len(t, base, 1)
	assert.Equal(t, "b@gmail.com", one[1].Address())
	assert.Equal(t, "c@gmail.com", two[1].Address())
}

func TestHistory_Filter(t *testing.T) {
	h := sampleHistory()

	valid := h.Filter(StatusValid)
	assert.Len(t, valid, 2)
	assert.Equal(t, "b@gmail.com", valid[0].Address())
	assert.Equal(t, "c@gmail.com", valid[1].Address())

	assert.Len(t, h.Filter(StatusInvalidFormat, StatusDisposable), 2)
	assert.Len(t, h.Filter(), 4)
}

func TestHistory_Counts(t *testing.T) {
	counts := sampleHistory().Counts()
	assert.Equal(t, 1, counts[StatusInvalidFormat])
	assert.Equal(t, 1, counts[StatusDisposable])
	assert.Equal(t, 2, counts[StatusValid])

	empty := History(nil).Counts()
	assert.Equal(t, 0, empty[StatusValid])
}
