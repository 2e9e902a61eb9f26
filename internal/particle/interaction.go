package particle

// Effect describes what an interaction does to the two reacting cells.
type Effect uint8

const (
	// Replace consumes both particles; the rule's Result occupies the
	// target cell.
	Replace Effect = iota
	// Preserve consumes the target; the source particle's kind survives in
	// the target cell with a freshly randomized direction.
	Preserve
)

// Rule is the outcome of two particle kinds meeting during simulation.
type Rule struct {
	Effect Effect
	// Result is the kind placed in the target cell. Meaningful for Replace;
	// Preserve rules keep the source kind instead.
	Result Kind
}

// pairKey is an unordered pair of kinds. Normalized so (a, b) and (b, a) map
// to the same key.
type pairKey struct {
	lo, hi Kind
}

func keyFor(a, b Kind) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// Rules is an immutable lookup from unordered kind pairs to interaction
// rules. Build one at startup and share it by reference; tests may construct
// alternate tables.
type Rules struct {
	table map[pairKey]Rule
}

// NewRules builds an empty rule table.
func NewRules() *Rules {
	return &Rules{table: map[pairKey]Rule{}}
}

// Add registers a rule for the unordered pair (a, b), overwriting any
// previous rule for that pair.
func (r *Rules) Add(a, b Kind, rule Rule) {
	r.table[keyFor(a, b)] = rule
}

// Lookup returns the rule for (a, b) if one exists. Symmetric in a and b.
func (r *Rules) Lookup(a, b Kind) (Rule, bool) {
	if r == nil {
		return Rule{}, false
	}
	rule, ok := r.table[keyFor(a, b)]
	return rule, ok
}

// Len returns the number of registered pairs.
func (r *Rules) Len() int { return len(r.table) }

// DefaultRules returns the standard interaction table: water quenching lava
// into obsidian, and water neutralizing acid.
func DefaultRules() *Rules {
	r := NewRules()
	r.Add(KindWater, KindLava, Rule{Effect: Replace, Result: KindObsidian})
	r.Add(KindWater, KindAcid, Rule{Effect: Preserve})
	return r
}
