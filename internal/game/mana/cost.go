package mana

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Cost represents a parsed mana cost.
type Cost struct {
	Generic   int
	White     int
	Blue      int
	Black     int
	Red       int
	Green     int
	Colorless int
	X         bool // X in cost (e.g. {X}{R}); counts as zero until chosen
}

var symbolPattern = regexp.MustCompile(`\{([^}]+)\}`)

// ParseCost parses a mana cost string (e.g. "{1}{G}", "{2}{R}{R}", "{X}{R}").
// Supports generic ({1}, {2}, ...), colored ({W}{U}{B}{R}{G}{C}), {X}, and
// hybrid symbols ({W/U}, {2/B}, {R/P}), which are counted as their first
// component. Goldfish affordability only looks at totals, so the exact
// hybrid choice never matters.
func ParseCost(costStr string) (*Cost, error) {
	cost := &Cost{}
	if costStr == "" {
		return cost, nil
	}

	matches := symbolPattern.FindAllStringSubmatch(costStr, -1)
	for _, match := range matches {
		symbol := strings.ToUpper(strings.TrimSpace(match[1]))
		if strings.Contains(symbol, "/") {
			symbol = strings.SplitN(symbol, "/", 2)[0]
		}

		switch symbol {
		case "X", "Y", "Z":
			cost.X = true
		case "W":
			cost.White++
		case "U":
			cost.Blue++
		case "B":
			cost.Black++
		case "R":
			cost.Red++
		case "G":
			cost.Green++
		case "C":
			cost.Colorless++
		default:
			num, err := strconv.Atoi(symbol)
			if err != nil {
				return nil, fmt.Errorf("unknown mana symbol: {%s}", symbol)
			}
			cost.Generic += num
		}
	}

	return cost, nil
}

// MustParseCost is ParseCost for fixture costs known at compile time.
func MustParseCost(costStr string) *Cost {
	cost, err := ParseCost(costStr)
	if err != nil {
		panic(err)
	}
	return cost
}

// Total returns the converted cost (mana value). X counts as zero.
func (c *Cost) Total() int {
	if c == nil {
		return 0
	}
	return c.Generic + c.White + c.Blue + c.Black + c.Red + c.Green + c.Colorless
}

// Copy creates an independent copy of the cost.
func (c *Cost) Copy() *Cost {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

func (c *Cost) String() string {
	if c == nil {
		return ""
	}
	var sb strings.Builder
	if c.X {
		sb.WriteString("{X}")
	}
	if c.Generic > 0 {
		fmt.Fprintf(&sb, "{%d}", c.Generic)
	}
	writeRepeated(&sb, "W", c.White)
	writeRepeated(&sb, "U", c.Blue)
	writeRepeated(&sb, "B", c.Black)
	writeRepeated(&sb, "R", c.Red)
	writeRepeated(&sb, "G", c.Green)
	writeRepeated(&sb, "C", c.Colorless)
	return sb.String()
}

func writeRepeated(sb *strings.Builder, symbol string, count int) {
	for i := 0; i < count; i++ {
		sb.WriteString("{" + symbol + "}")
	}
}
