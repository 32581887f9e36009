package tags

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// overrideFile is the on-disk shape of a user override table:
//
//	[cards]
//	"My Custom Rock" = ["RAMP", "ARTIFACT", "MANA_ROCK"]
type overrideFile struct {
	Cards map[string][]string `toml:"cards"`
}

// LoadOverrideFile merges name→tags entries from a TOML file into the
// classifier's override table, replacing built-in entries of the same name.
// Call before the first Classify; overrides are part of classifier setup,
// not runtime state.
func (c *Classifier) LoadOverrideFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read override file: %w", err)
	}

	var file overrideFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse override file %s: %w", path, err)
	}

	for name, rawTags := range file.Cards {
		cardTags := make([]Tag, 0, len(rawTags))
		for _, raw := range rawTags {
			cardTags = append(cardTags, Tag(raw))
		}
		c.overrides[name] = cardTags
	}

	return nil
}
