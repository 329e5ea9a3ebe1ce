package props

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBestOdds(t *testing.T) {
	entries := []RankedProp{
		{Pitcher: "A", Odds: -130},
		{Pitcher: "B", Odds: 120},
		{Pitcher: "C", Odds: -105},
		{Pitcher: "D", Odds: 120},
	}

	got := BestOdds(entries, 3)

	require.Len(t, got, 3)
	assert.Equal(t, "B", got[0].Pitcher)
	assert.Equal(t, "D", got[1].Pitcher, "equal odds keep input order")
	assert.Equal(t, "C", got[2].Pitcher)

	// Input must not be reordered.
	assert.Equal(t, "A", entries[0].Pitcher)
}

func TestBestOdds_NLargerThanInput(t *testing.T) {
	entries := []RankedProp{{Pitcher: "A", Odds: -110}}

	assert.Len(t, BestOdds(entries, 20), 1)
	assert.Empty(t, BestOdds(nil, 20))
}

func TestMostAvailable(t *testing.T) {
	entries := []RankedProp{
		{Pitcher: "A", BookCount: 2},
		{Pitcher: "B", BookCount: 6},
		{Pitcher: "C", BookCount: 6},
		{Pitcher: "D", BookCount: 4},
	}

	got := MostAvailable(entries, 2)

	require.Len(t, got, 2)
	assert.Equal(t, "B", got[0].Pitcher)
	assert.Equal(t, "C", got[1].Pitcher, "ties keep input order")
}
