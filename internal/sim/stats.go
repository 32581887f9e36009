package sim

import (
	"math"
	"sort"
)

// Aggregate summarizes a batch for reporting.
type Aggregate struct {
	Games int `json:"games"`

	MeanLandsAtCheckpoint   float64 `json:"mean_lands_at_checkpoint"`
	StddevLandsAtCheckpoint float64 `json:"stddev_lands_at_checkpoint"`
	MeanManaAtCheckpoint    float64 `json:"mean_mana_sources_at_checkpoint"`
	MeanFinalLands          float64 `json:"mean_final_lands"`

	// EmptyHandPct is the share of games whose hand emptied at some point;
	// MeanEmptyHandTurn averages over only those games.
	EmptyHandPct      float64 `json:"empty_hand_pct"`
	MeanEmptyHandTurn float64 `json:"mean_empty_hand_turn"`

	// LandsHistogram counts games by lands at the checkpoint turn.
	LandsHistogram map[int]int `json:"lands_histogram"`
}

// Aggregate computes batch-level statistics.
func (b *BatchResult) Aggregate() Aggregate {
	agg := Aggregate{
		Games:          len(b.Results),
		LandsHistogram: make(map[int]int),
	}
	if agg.Games == 0 {
		return agg
	}

	var lands, manaSources, finalLands []float64
	emptyGames := 0
	emptyTurnSum := 0.0

	for _, result := range b.Results {
		lands = append(lands, float64(result.Stats.LandsAtCheckpoint))
		manaSources = append(manaSources, float64(result.Stats.ManaSourcesAtCheckpoint))
		finalLands = append(finalLands, float64(result.Stats.FinalLands))
		agg.LandsHistogram[result.Stats.LandsAtCheckpoint]++

		if result.Stats.HandEmptyTurn > 0 {
			emptyGames++
			emptyTurnSum += float64(result.Stats.HandEmptyTurn)
		}
	}

	agg.MeanLandsAtCheckpoint = mean(lands)
	agg.StddevLandsAtCheckpoint = stddev(lands)
	agg.MeanManaAtCheckpoint = mean(manaSources)
	agg.MeanFinalLands = mean(finalLands)
	agg.EmptyHandPct = float64(emptyGames) / float64(agg.Games) * 100
	if emptyGames > 0 {
		agg.MeanEmptyHandTurn = emptyTurnSum / float64(emptyGames)
	}
	return agg
}

// HistogramBuckets returns the histogram keys in ascending order.
func (a Aggregate) HistogramBuckets() []int {
	buckets := make([]int, 0, len(a.LandsHistogram))
	for k := range a.LandsHistogram {
		buckets = append(buckets, k)
	}
	sort.Ints(buckets)
	return buckets
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func stddev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	sum := 0.0
	for _, x := range xs {
		sum += (x - m) * (x - m)
	}
	return math.Sqrt(sum / float64(len(xs)-1))
}
