package sim

import "math"

// HypergeometricPMF is the probability of drawing exactly k successes in n
// draws without replacement from a population of size N containing K
// successes. Computed with log-gamma to stay stable at deck-sized inputs.
func HypergeometricPMF(N, K, n, k int) float64 {
	if k < 0 || k > K || n-k > N-K || n > N {
		return 0
	}
	logP := logChoose(K, k) + logChoose(N-K, n-k) - logChoose(N, n)
	return math.Exp(logP)
}

// ExpectedLandsOnField is the theoretical expected number of lands on the
// battlefield at the end of the given turn, assuming the opening seven plus
// one draw per turn and at most one land drop per turn. Used to sanity-check
// simulated results against closed-form theory.
func ExpectedLandsOnField(deckSize, landCount, turn int) float64 {
	cardsSeen := 7 + turn
	if cardsSeen > deckSize {
		cardsSeen = deckSize
	}

	expected := 0.0
	for drawn := 0; drawn <= cardsSeen; drawn++ {
		p := HypergeometricPMF(deckSize, landCount, cardsSeen, drawn)
		onField := drawn
		if onField > turn {
			onField = turn
		}
		expected += float64(onField) * p
	}
	return expected
}

func logChoose(n, k int) float64 {
	if k < 0 || k > n {
		return math.Inf(-1)
	}
	a, _ := math.Lgamma(float64(n + 1))
	b, _ := math.Lgamma(float64(k + 1))
	c, _ := math.Lgamma(float64(n - k + 1))
	return a - b - c
}
