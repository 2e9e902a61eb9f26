// Package particle defines the closed set of particle kinds that populate the
// world grid, together with the per-kind constants that drive world generation
// (depth intervals, spawn weights) and fluid movement (buoyancy, viscosity).
package particle

import (
	"fmt"
	"math"

	"sandfall/pkg/core"
)

// SpawnScale represents 100% in discrete spawn-weight units. A weight of 5 on
// this scale is 0.5%.
const SpawnScale = 1000

// Kind identifies a concrete particle kind. The zero value means "no
// particle" and is what empty cells hold.
type Kind uint8

const (
	KindNone Kind = iota
	KindDirt
	KindStone
	KindGold
	KindRuby
	KindWater
	KindLava
	KindAcid
	KindObsidian
)

// Category groups kinds by their role in generation and simulation.
type Category uint8

const (
	CategoryNone Category = iota
	// CategoryCommon is the generic terrain for a given depth.
	CategoryCommon
	// CategorySpecial covers ores and gems placed by the weighted roll.
	CategorySpecial
	// CategoryLiquid covers particles that flow each tick.
	CategoryLiquid
	// CategorySolid covers particles produced by interactions.
	CategorySolid
)

// Direction is the horizontal bias a liquid carries between ticks.
type Direction int8

const (
	Still Direction = 0
	Left  Direction = -1
	Right Direction = 1
)

// Opposite returns the flipped direction. Still stays Still.
func (d Direction) Opposite() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	default:
		return Still
	}
}

// Step returns the direction as a signed x offset.
func (d Direction) Step() int { return int(d) }

// RandomDirection returns Left or Right with equal probability.
func RandomDirection(rng *core.RNG) Direction {
	if rng.Bool() {
		return Left
	}
	return Right
}

// Particle is a value-type cell occupant. Dir is simulation state carried by
// liquids only; identity comparisons between particles must use Kind, since
// two liquids differing only by direction are the same particle kind.
type Particle struct {
	Kind Kind
	Dir  Direction
}

// New returns a particle of the given kind with no horizontal bias.
func New(kind Kind) Particle { return Particle{Kind: kind} }

// NewLiquid returns a liquid particle carrying the given bias direction.
func NewLiquid(kind Kind, dir Direction) Particle { return Particle{Kind: kind, Dir: dir} }

// IsEmpty reports whether the value represents an empty cell.
func (p Particle) IsEmpty() bool { return p.Kind == KindNone }

// IsLiquid reports whether the particle flows during simulation.
func (p Particle) IsLiquid() bool { return p.Kind.Category() == CategoryLiquid }

// Flipped returns the particle with its bias direction reversed.
func (p Particle) Flipped() Particle {
	p.Dir = p.Dir.Opposite()
	return p
}

// Category returns the role group of the kind.
func (k Kind) Category() Category {
	switch k {
	case KindDirt, KindStone:
		return CategoryCommon
	case KindGold, KindRuby:
		return CategorySpecial
	case KindWater, KindLava, KindAcid:
		return CategoryLiquid
	case KindObsidian:
		return CategorySolid
	default:
		return CategoryNone
	}
}

// MinDepth returns the inclusive lower bound of the spawn-depth interval.
func (k Kind) MinDepth() int {
	switch k {
	case KindDirt:
		return 0
	case KindStone:
		return 12
	case KindGold:
		return 23
	case KindRuby:
		return 80
	default:
		panic(fmt.Sprintf("particle: kind %v has no spawn depth", k))
	}
}

// MaxDepth returns the exclusive upper bound of the spawn-depth interval.
func (k Kind) MaxDepth() int {
	switch k {
	case KindDirt:
		return 12
	case KindStone:
		return math.MaxInt
	case KindGold:
		return math.MaxInt
	case KindRuby:
		return 150
	default:
		panic(fmt.Sprintf("particle: kind %v has no spawn depth", k))
	}
}

// SpawnWeight returns the special's weight on the SpawnScale.
//
// Note: veins disconnect this value from the final particle count; gold
// spawns extra cells around every rolled placement.
func (k Kind) SpawnWeight() int {
	switch k {
	case KindGold:
		return 20
	case KindRuby:
		return 3
	default:
		panic(fmt.Sprintf("particle: kind %v has no spawn weight", k))
	}
}

// Buoyancy is the signed vertical step a liquid takes each tick. -1 sinks.
func (k Kind) Buoyancy() int {
	switch k {
	case KindWater, KindLava, KindAcid:
		return -1
	default:
		panic(fmt.Sprintf("particle: kind %v has no buoyancy", k))
	}
}

// Viscosity is the maximum reach (in cells) of a liquid's movement scan per
// tick. Higher values spread faster.
func (k Kind) Viscosity() int {
	switch k {
	case KindWater:
		return 5
	case KindLava:
		return 3
	case KindAcid:
		return 4
	default:
		panic(fmt.Sprintf("particle: kind %v has no viscosity", k))
	}
}

// SpriteIndex returns the spritesheet cell used by render collaborators.
// Index 0 is the transparent air cell.
func (k Kind) SpriteIndex() uint8 {
	switch k {
	case KindDirt:
		return 1
	case KindStone:
		return 2
	case KindGold:
		return 3
	case KindRuby:
		return 4
	case KindWater:
		return 5
	case KindLava:
		return 6
	case KindObsidian:
		return 7
	case KindAcid:
		return 8
	default:
		return 0
	}
}

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "air"
	case KindDirt:
		return "dirt"
	case KindStone:
		return "stone"
	case KindGold:
		return "gold"
	case KindRuby:
		return "ruby"
	case KindWater:
		return "water"
	case KindLava:
		return "lava"
	case KindAcid:
		return "acid"
	case KindObsidian:
		return "obsidian"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Commons lists the generic terrain kinds in declaration order.
func Commons() []Kind { return []Kind{KindDirt, KindStone} }

// Specials lists the ore and gem kinds in declaration order.
func Specials() []Kind { return []Kind{KindGold, KindRuby} }

// IsVeinForming reports whether a special spawns as a clustered vein rather
// than a single cell. Ores form veins; gems spawn alone.
func (k Kind) IsVeinForming() bool { return k == KindGold }

// CommonAtDepth returns the unique common kind whose half-open interval
// [MinDepth, MaxDepth) contains depth.
//
// The interval set is asserted to be an exact partition of [0, inf): zero or
// multiple matches mean the static tables were mis-authored, and the function
// panics so the bug surfaces immediately instead of degrading silently.
func CommonAtDepth(depth int) Kind {
	match := KindNone
	for _, k := range Commons() {
		if depth >= k.MinDepth() && depth < k.MaxDepth() {
			if match != KindNone {
				panic(fmt.Sprintf("particle: depth %d matches both %v and %v, common intervals overlap", depth, match, k))
			}
			match = k
		}
	}
	if match == KindNone {
		panic(fmt.Sprintf("particle: no common kind covers depth %d", depth))
	}
	return match
}
