package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHypergeometricPMFSumsToOne(t *testing.T) {
	sum := 0.0
	for k := 0; k <= 11; k++ {
		sum += HypergeometricPMF(99, 35, 11, k)
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestHypergeometricPMFImpossibleCases(t *testing.T) {
	assert.Zero(t, HypergeometricPMF(99, 35, 11, 12))
	assert.Zero(t, HypergeometricPMF(99, 35, 11, -1))
	// Cannot draw more non-lands than exist.
	assert.Zero(t, HypergeometricPMF(10, 8, 5, 1))
}

func TestExpectedLandsAllLandsDeck(t *testing.T) {
	// Every draw is a land, so the field holds exactly one land per turn.
	assert.InDelta(t, 4.0, ExpectedLandsOnField(99, 99, 4), 1e-9)
}

func TestExpectedLandsNoLandsDeck(t *testing.T) {
	assert.InDelta(t, 0.0, ExpectedLandsOnField(99, 0, 4), 1e-9)
}

func TestExpectedLandsTypicalDeck(t *testing.T) {
	// 35 lands in 99 cards, 11 cards seen by turn 4: the mean number of
	// lands drawn is 11*35/99 ≈ 3.89, clipped from above by the 4-drop cap.
	expected := ExpectedLandsOnField(99, 35, 4)
	assert.Greater(t, expected, 3.0)
	assert.Less(t, expected, 3.9)
}
