package confirm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmAccepted(t *testing.T) {
	g := NewGuard(10, time.Minute)
	want := Action{Kind: "income", ID: "i1", Prompt: "sure?"}

	tok, err := g.Request(want)
	require.NoError(t, err)
	assert.Len(t, tok, 32)

	peek, ok := g.Peek(tok)
	require.True(t, ok)
	assert.Equal(t, want, peek)

	got, accepted, err := g.Confirm(tok, true)
	require.NoError(t, err)
	assert.True(t, accepted)
	assert.Equal(t, want, got)
}

func TestConfirmTokensAreSingleUse(t *testing.T) {
	g := NewGuard(10, time.Minute)
	tok, err := g.Request(Action{Kind: "bill", ID: "b1"})
	require.NoError(t, err)

	_, _, err = g.Confirm(tok, true)
	require.NoError(t, err)

	_, accepted, err := g.Confirm(tok, true)
	assert.ErrorIs(t, err, ErrUnknownToken)
	assert.False(t, accepted)
}

func TestConfirmDeclinedConsumesToken(t *testing.T) {
	g := NewGuard(10, time.Minute)
	tok, err := g.Request(Action{Kind: "expense", ID: "e1"})
	require.NoError(t, err)

	_, accepted, err := g.Confirm(tok, false)
	require.NoError(t, err)
	assert.False(t, accepted)

	_, _, err = g.Confirm(tok, true)
	assert.ErrorIs(t, err, ErrUnknownToken)
}

func TestConfirmExpired(t *testing.T) {
	now := time.Now()
	g := NewGuard(10, time.Minute)
	g.Cache().WithClock(func() time.Time { return now })

	tok, err := g.Request(Action{Kind: "income", ID: "i1"})
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, accepted, err := g.Confirm(tok, true)
	assert.ErrorIs(t, err, ErrUnknownToken)
	assert.False(t, accepted)
}

func TestDistinctTokens(t *testing.T) {
	g := NewGuard(10, time.Minute)
	a, err := g.Request(Action{})
	require.NoError(t, err)
	b, err := g.Request(Action{})
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
