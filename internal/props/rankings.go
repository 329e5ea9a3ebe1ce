package props

import "sort"

// RankedProp is a flattened proposition entry used by the cross-game
// rankings (best odds, widest availability).
type RankedProp struct {
	Pitcher       string  `json:"pitcher"`
	Game          string  `json:"game"`
	Line          float64 `json:"line"`
	Odds          int     `json:"odds"`
	OddsFormatted string  `json:"odds_formatted"`
	BookCount     int     `json:"sportsbook_count"`
}

// BestOdds returns the top n entries by odds value, descending. The sort is
// stable: entries with equal odds keep their input order.
func BestOdds(entries []RankedProp, n int) []RankedProp {
	ranked := make([]RankedProp, len(entries))
	copy(ranked, entries)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Odds > ranked[j].Odds
	})

	return topN(ranked, n)
}

// MostAvailable returns the top n entries by contributing sportsbook count,
// descending, with the same stability guarantee as BestOdds.
func MostAvailable(entries []RankedProp, n int) []RankedProp {
	ranked := make([]RankedProp, len(entries))
	copy(ranked, entries)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].BookCount > ranked[j].BookCount
	})

	return topN(ranked, n)
}

func topN(entries []RankedProp, n int) []RankedProp {
	if n < 0 {
		n = 0
	}
	if n > len(entries) {
		n = len(entries)
	}
	return entries[:n]
}
