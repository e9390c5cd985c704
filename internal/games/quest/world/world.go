// Package world generates the infinite overworld.
// Every grid cell's terrain feature is a pure function of its coordinates;
// the Generator memoizes results so repeated lookups are cheap and stable.
package world

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-quest/internal/config"
	"github.com/vovakirdan/tui-quest/internal/core"
)

// Variant is the terrain feature occupying a grid cell.
type Variant int

const (
	VariantEmpty Variant = iota
	VariantTree          // Small obstacle
	VariantHouse         // Large obstacle with an enterable doorway
)

// String returns the sprite key for the variant.
func (v Variant) String() string {
	switch v {
	case VariantTree:
		return "tree"
	case VariantHouse:
		return "house"
	default:
		return "empty"
	}
}

// Coord addresses a grid cell. X increases to the right, Y downward.
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Cell is the immutable terrain descriptor of one grid cell.
type Cell struct {
	Coord   Coord
	Variant Variant
	Bounds  core.Box // World-space footprint; zero for empty cells
	Depth   float64  // Draw-depth key; zero for empty cells
}

// Empty reports whether the cell has no feature.
func (c Cell) Empty() bool {
	return c.Variant == VariantEmpty
}

// Origin returns the world position of the cell's top-left corner.
func (c Cell) Origin() core.Vec2 {
	return c.Bounds.Min
}

// SeedFunc maps grid coordinates to a pseudo-random value in [0, 1).
// It must be pure.
type SeedFunc func(gx, gy int) float64

// SineHash returns the classic shader-style hash |sin(gx*A + gy*B) * Scale| mod 1.
func SineHash(h config.HashConfig) SeedFunc {
	return func(gx, gy int) float64 {
		v := math.Abs(math.Sin(float64(gx)*h.A+float64(gy)*h.B) * h.Scale)
		return math.Mod(v, 1)
	}
}

// Generator is the memoized WorldGenerator. The index is append-only for the
// lifetime of the generator; a restarted simulation gets a new Generator.
type Generator struct {
	cfg   config.WorldConfig
	seed  SeedFunc
	cells map[Coord]Cell
}

// NewGenerator creates a generator using the configured sine hash.
func NewGenerator(cfg config.WorldConfig) *Generator {
	return NewGeneratorWithSeed(cfg, SineHash(cfg.Hash))
}

// NewGeneratorWithSeed creates a generator with a custom seed function.
// Panics if the grid pitch is not positive.
func NewGeneratorWithSeed(cfg config.WorldConfig, seed SeedFunc) *Generator {
	if cfg.GridPitch <= 0 {
		panic(fmt.Sprintf("world: grid pitch must be positive, got %v", cfg.GridPitch))
	}
	return &Generator{
		cfg:   cfg,
		seed:  seed,
		cells: make(map[Coord]Cell),
	}
}

// Pitch returns the grid pitch in world units.
func (g *Generator) Pitch() float64 {
	return g.cfg.GridPitch
}

// Classify maps a seed value to a variant using the configured bands:
// [0, house) -> house, [house, tree) -> tree, otherwise empty.
func (g *Generator) Classify(seed float64) Variant {
	switch {
	case seed < g.cfg.House.Threshold:
		return VariantHouse
	case seed < g.cfg.Tree.Threshold:
		return VariantTree
	default:
		return VariantEmpty
	}
}

// CellAt returns the cell at (gx, gy), generating and memoizing it on first use.
func (g *Generator) CellAt(gx, gy int) Cell {
	key := C(gx, gy)
	if cell, ok := g.cells[key]; ok {
		return cell
	}
	cell := g.generate(key)
	g.cells[key] = cell
	return cell
}

// generate builds a cell without touching the index.
func (g *Generator) generate(c Coord) Cell {
	cell := Cell{Coord: c, Variant: g.Classify(g.seed(c.X, c.Y))}

	var feature config.FeatureConfig
	switch cell.Variant {
	case VariantHouse:
		feature = g.cfg.House
	case VariantTree:
		feature = g.cfg.Tree
	default:
		return cell
	}

	pitch := g.cfg.GridPitch
	cell.Bounds = core.Box{
		Min: core.V(float64(c.X)*pitch, float64(c.Y)*pitch),
		W:   feature.Width,
		H:   feature.Height,
	}
	cell.Depth = float64(c.Y)*pitch + feature.DepthOffset
	return cell
}

// CoordOf returns the grid cell containing a world position.
func (g *Generator) CoordOf(p core.Vec2) Coord {
	return C(core.FloorDiv(p.X, g.cfg.GridPitch), core.FloorDiv(p.Y, g.cfg.GridPitch))
}

// Window returns the non-empty cells within radius of center (a square of
// side 2*radius+1), in row-major order.
func (g *Generator) Window(center Coord, radius int) []Cell {
	out := make([]Cell, 0, (2*radius+1)*(2*radius+1)/4)
	for gy := center.Y - radius; gy <= center.Y+radius; gy++ {
		for gx := center.X - radius; gx <= center.X+radius; gx++ {
			if cell := g.CellAt(gx, gy); !cell.Empty() {
				out = append(out, cell)
			}
		}
	}
	return out
}

// Len returns the number of memoized cells.
func (g *Generator) Len() int {
	return len(g.cells)
}
