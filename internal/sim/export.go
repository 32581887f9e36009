package sim

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// ExportCSV writes one row per completed game, suitable for spreadsheet
// analysis.
func (b *BatchResult) ExportCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := []string{
		"game_index",
		"lands_at_checkpoint",
		"mana_sources_at_checkpoint",
		"hand_empty_turn",
		"final_lands",
		"final_turn",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range b.Results {
		row := []string{
			strconv.Itoa(result.GameIndex),
			strconv.Itoa(result.Stats.LandsAtCheckpoint),
			strconv.Itoa(result.Stats.ManaSourcesAtCheckpoint),
			strconv.Itoa(result.Stats.HandEmptyTurn),
			strconv.Itoa(result.Stats.FinalLands),
			strconv.Itoa(result.Stats.FinalTurn),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// ExportJSON writes the batch result and its aggregate as indented JSON.
func (b *BatchResult) ExportJSON(w io.Writer) error {
	out := struct {
		*BatchResult
		Aggregate Aggregate `json:"aggregate"`
	}{b, b.Aggregate()}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode batch JSON: %w", err)
	}
	return nil
}
