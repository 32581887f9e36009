package mana

// ManaType represents a type of mana.
type ManaType string

const (
	ManaWhite     ManaType = "WHITE"
	ManaBlue      ManaType = "BLUE"
	ManaBlack     ManaType = "BLACK"
	ManaRed       ManaType = "RED"
	ManaGreen     ManaType = "GREEN"
	ManaColorless ManaType = "COLORLESS"
)

// Pool represents the mana available to the simulated player during a turn.
// A game runs on a single goroutine and batch runs give every game its own
// pool, so the pool carries no locking.
//
// Goldfish affordability is total-based: colors are fungible when checking
// and paying costs, so the per-type breakdown exists only for logging.
type Pool struct {
	White     int
	Blue      int
	Black     int
	Red       int
	Green     int
	Colorless int
}

// NewPool creates a new empty mana pool.
func NewPool() *Pool {
	return &Pool{}
}

// Add adds mana to the pool. Non-positive amounts are ignored.
func (p *Pool) Add(manaType ManaType, amount int) {
	if amount <= 0 {
		return
	}
	switch manaType {
	case ManaWhite:
		p.White += amount
	case ManaBlue:
		p.Blue += amount
	case ManaBlack:
		p.Black += amount
	case ManaRed:
		p.Red += amount
	case ManaGreen:
		p.Green += amount
	case ManaColorless:
		p.Colorless += amount
	}
}

// Total returns the total mana in the pool across all types.
func (p *Pool) Total() int {
	return p.White + p.Blue + p.Black + p.Red + p.Green + p.Colorless
}

// CanAfford reports whether the pool can pay the cost. Only totals are
// compared; all mana is treated as generic.
func (p *Pool) CanAfford(cost *Cost) bool {
	if cost == nil {
		return true
	}
	return p.Total() >= cost.Total()
}

// Pay deducts the cost's total from the pool, draining colorless first and
// then colors in WUBRG order. Returns false with the pool untouched if the
// pool cannot cover the total; no type ever goes negative.
func (p *Pool) Pay(cost *Cost) bool {
	if cost == nil {
		return true
	}
	remaining := cost.Total()
	if p.Total() < remaining {
		return false
	}
	buckets := []*int{&p.Colorless, &p.White, &p.Blue, &p.Black, &p.Red, &p.Green}
	for _, bucket := range buckets {
		if remaining == 0 {
			break
		}
		take := remaining
		if take > *bucket {
			take = *bucket
		}
		*bucket -= take
		remaining -= take
	}
	return true
}

// Empty resets the pool to zero. Runs once per turn at cleanup.
func (p *Pool) Empty() {
	*p = Pool{}
}

// Copy creates an independent copy of the pool.
func (p *Pool) Copy() *Pool {
	cp := *p
	return &cp
}
