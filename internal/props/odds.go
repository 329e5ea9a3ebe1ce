package props

import (
	"fmt"
	"math"
	"strconv"
)

// ImpliedProbability converts an American odds quote into the win
// probability it encodes, ignoring bookmaker margin.
// -150 → 0.600, +150 → 0.400. Zero is not a valid quote.
func ImpliedProbability(odds int) (float64, error) {
	if odds == 0 {
		return 0, fmt.Errorf("invalid american odds: cannot be 0")
	}

	if odds > 0 {
		return 100.0 / (float64(odds) + 100.0), nil
	}

	abs := float64(-odds)
	return abs / (abs + 100.0), nil
}

// AmericanFromProbability converts a win probability back into an American
// quote. Probabilities of 0.5 and above take the favorite (negative)
// branch, so even money comes out as -100. Rounding is math.Round
// (half away from zero).
func AmericanFromProbability(p float64) int {
	if p >= 0.5 {
		return int(math.Round(-p / (1 - p) * 100))
	}
	return int(math.Round((1 - p) / p * 100))
}

// Consensus reduces the quotes for one side of a proposition to a single
// representative quote: each is converted to its implied probability, the
// probabilities are averaged, and the mean is converted back. Averaging the
// raw American values instead would skew the result because the scale is
// not linear around ±100.
//
// Returns nil when no usable quotes are present. Zero-valued quotes are
// skipped individually rather than failing the whole reduction.
func Consensus(odds []int) *int {
	var sum float64
	var n int

	for _, o := range odds {
		p, err := ImpliedProbability(o)
		if err != nil {
			continue
		}
		sum += p
		n++
	}

	if n == 0 {
		return nil
	}

	c := AmericanFromProbability(sum / float64(n))
	return &c
}

// FormatAmerican renders a quote with the conventional explicit sign:
// "+104" for underdogs, "-128" for favorites, "N/A" when there is no quote.
func FormatAmerican(odds *int) string {
	if odds == nil {
		return "N/A"
	}
	if *odds > 0 {
		return "+" + strconv.Itoa(*odds)
	}
	return strconv.Itoa(*odds)
}
