package game

import (
	"math/rand/v2"
	"time"
)

// Kind identifies a shape template in the catalog.
type Kind int

const (
	KindLine Kind = iota
	KindSquare
	KindT
	KindZ
	KindS

	KindCount = int(KindS) + 1
)

var kindNames = [KindCount]string{"line", "square", "T", "Z", "S"}

func (k Kind) String() string {
	if k < 0 || int(k) >= KindCount {
		return "unknown"
	}
	return kindNames[k]
}

var templates = [KindCount]Shape{
	KindLine:   {{true, true, true, true}},
	KindSquare: {{true, true}, {true, true}},
	KindT:      {{true, true, true}, {false, true, false}},
	KindZ:      {{false, true, true}, {true, true, false}},
	KindS:      {{true, true, false}, {false, true, true}},
}

// Template returns a fresh copy of the spawn rotation for the kind.
func (k Kind) Template() Shape {
	return templates[k].Clone()
}

// Source supplies uniform random integers in [0, n). *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// NewSource returns a PCG backed source. A zero seed is replaced by the current time.
func NewSource(seed uint64) Source {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Catalog produces randomly selected pieces. Shape and color are drawn independently.
type Catalog struct {
	colors int
	rng    Source
}

// NewCatalog creates a catalog drawing colors from a palette of the given size.
func NewCatalog(colors int, rng Source) *Catalog {
	return &Catalog{colors: colors, rng: rng}
}

// Spawn returns a new piece anchored near the horizontal center of the top row.
func (c *Catalog) Spawn(cols int) Piece {
	kind := Kind(c.rng.IntN(KindCount))
	return Piece{
		Kind:  kind,
		Shape: kind.Template(),
		X:     cols/2 - 2,
		Y:     0,
		Color: ColorID(c.rng.IntN(c.colors) + 1),
	}
}
