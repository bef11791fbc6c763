package physics

import (
	"errors"
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigid2d/ecs"
	"github.com/milk9111/rigid2d/ecs/component"
)

const (
	MinGridDimension = 1
	MaxGridDimension = 20
)

var ErrInvalidGridConfig = errors.New("physics: invalid grid config")

// GridConfig sizes an ImplicitGrid. It is owned by one grid; changing it goes
// through ImplicitGrid.SetConfig.
type GridConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

func DefaultGridConfig() GridConfig {
	return GridConfig{Rows: 4, Cols: 4}
}

// NewGridConfig clamps rows and cols into the supported range.
func NewGridConfig(rows, cols int) GridConfig {
	return GridConfig{Rows: clampDimension(rows), Cols: clampDimension(cols)}
}

func (c GridConfig) Validate() error {
	if c.Rows < MinGridDimension || c.Rows > MaxGridDimension {
		return fmt.Errorf("%w: rows %d not in [%d, %d]", ErrInvalidGridConfig, c.Rows, MinGridDimension, MaxGridDimension)
	}
	if c.Cols < MinGridDimension || c.Cols > MaxGridDimension {
		return fmt.Errorf("%w: cols %d not in [%d, %d]", ErrInvalidGridConfig, c.Cols, MinGridDimension, MaxGridDimension)
	}
	return nil
}

func clampDimension(n int) int {
	return max(MinGridDimension, min(MaxGridDimension, n))
}

// Cell addresses one grid cell. Row 0 is the top of the viewport.
type Cell struct {
	Row int
	Col int
}

// GridPlacement classifies an entity against the grid bounds.
type GridPlacement int

const (
	GridOutside GridPlacement = iota
	GridInside
	GridOverlap
)

// ImplicitGrid partitions the camera-visible area into Rows x Cols cells and
// records, per row and per column, which entities cover it. It holds no
// state across ticks: ClearGrid then AddIntoCell every tick.
type ImplicitGrid struct {
	config   GridConfig
	viewport Viewport

	rows []ecs.EntitySet
	cols []ecs.EntitySet

	inside  ecs.EntitySet
	overlap ecs.EntitySet
	outside ecs.EntitySet
}

// NewImplicitGrid builds a grid. An invalid config is clamped.
func NewImplicitGrid(config GridConfig, viewport Viewport) *ImplicitGrid {
	g := &ImplicitGrid{viewport: viewport}
	g.SetConfig(config)
	return g
}

func (g *ImplicitGrid) Config() GridConfig {
	return g.config
}

// SetConfig resizes the grid and clears it.
func (g *ImplicitGrid) SetConfig(config GridConfig) {
	g.config = NewGridConfig(config.Rows, config.Cols)
	g.rows = make([]ecs.EntitySet, g.config.Rows)
	g.cols = make([]ecs.EntitySet, g.config.Cols)
	g.ClearGrid()
}

func (g *ImplicitGrid) SetViewport(v Viewport) {
	g.viewport = v
}

func (g *ImplicitGrid) Viewport() Viewport {
	return g.viewport
}

// ClearGrid empties every row, column and placement list.
func (g *ImplicitGrid) ClearGrid() {
	for i := range g.rows {
		g.rows[i].Clear()
	}
	for i := range g.cols {
		g.cols[i].Clear()
	}
	g.inside.Clear()
	g.overlap.Clear()
	g.outside.Clear()
}

// CellSize returns the world size of one cell derived from the current
// viewport and zoom.
func (g *ImplicitGrid) CellSize() (width, height float64) {
	w, h := worldViewportSize(g.viewport)
	return w / float64(g.config.Cols), h / float64(g.config.Rows)
}

// origin returns the world position of the grid's top-left corner.
func (g *ImplicitGrid) origin() cp.Vector {
	w, h := worldViewportSize(g.viewport)
	center := cp.Vector{}
	if g.viewport != nil {
		center = g.viewport.Center()
	}
	return cp.Vector{X: center.X - w/2, Y: center.Y - h/2}
}

// GetCell returns the cell containing position. Offsets are floored, so
// indices stay continuous across the grid edges and negative cells lie
// above or left of the viewport. It recomputes the cell size on each call.
func (g *ImplicitGrid) GetCell(position cp.Vector) Cell {
	cellW, cellH := g.CellSize()
	if cellW <= 0 || cellH <= 0 || math.IsNaN(cellW) || math.IsNaN(cellH) {
		return Cell{Row: -1, Col: -1}
	}
	offset := position.Sub(g.origin())
	return Cell{
		Row: int(math.Floor(offset.Y / cellH)),
		Col: int(math.Floor(offset.X / cellW)),
	}
}

// GridContains reports whether cell lies inside the grid bounds.
func (g *ImplicitGrid) GridContains(cell Cell) bool {
	return cell.Row >= 0 && cell.Row < g.config.Rows && cell.Col >= 0 && cell.Col < g.config.Cols
}

// CheckOverlap reports whether any cell of the min..max range lies inside
// the grid, which catches objects larger than the grid itself.
func (g *ImplicitGrid) CheckOverlap(minCell, maxCell Cell) bool {
	rowLo, rowHi := orderedRange(minCell.Row, maxCell.Row)
	colLo, colHi := orderedRange(minCell.Col, maxCell.Col)
	return rowLo < g.config.Rows && rowHi >= 0 && colLo < g.config.Cols && colHi >= 0
}

// AddIntoCell classifies every collider of w against the grid. It does
// nothing while the window is minimized.
func (g *ImplicitGrid) AddIntoCell(w *ecs.World) {
	if w == nil || (g.viewport != nil && g.viewport.Minimized()) {
		return
	}
	ecs.ForEach(w, component.ColliderComponent.Kind(), func(e ecs.Entity, c *component.Collider) {
		bb, ok := ColliderBB(c)
		if !ok {
			return
		}
		g.AddBounds(e, bb)
	})
}

// AddBounds classifies one entity by its world bounds and returns the
// placement it was recorded under.
func (g *ImplicitGrid) AddBounds(e ecs.Entity, bb cp.BB) GridPlacement {
	minCell := g.GetCell(cp.Vector{X: bb.L, Y: bb.B})
	maxCell := g.GetCell(cp.Vector{X: bb.R, Y: bb.T})
	minIn := g.GridContains(minCell)
	maxIn := g.GridContains(maxCell)

	switch {
	case minIn && maxIn:
		g.inside.Add(e)
		g.AddToBitArray(e, minCell, maxCell)
		return GridInside
	case minIn || maxIn, g.CheckOverlap(minCell, maxCell):
		g.overlap.Add(e)
		g.AddToBitArray(e, minCell, maxCell)
		return GridOverlap
	default:
		g.outside.Add(e)
		return GridOutside
	}
}

// AddToBitArray marks e in every in-bounds row and column of the range.
// Rows are walked from the larger index to the smaller one.
func (g *ImplicitGrid) AddToBitArray(e ecs.Entity, minCell, maxCell Cell) {
	g.eachCovered(minCell, maxCell, func(set *ecs.EntitySet) { set.Add(e) })
}

// RemoveFromBitArray clears e from every in-bounds row and column of the range.
func (g *ImplicitGrid) RemoveFromBitArray(e ecs.Entity, minCell, maxCell Cell) {
	g.eachCovered(minCell, maxCell, func(set *ecs.EntitySet) { set.Remove(e) })
}

func (g *ImplicitGrid) eachCovered(minCell, maxCell Cell, fn func(*ecs.EntitySet)) {
	rowLo, rowHi := orderedRange(minCell.Row, maxCell.Row)
	for r := min(rowHi, g.config.Rows-1); r >= max(rowLo, 0); r-- {
		fn(&g.rows[r])
	}
	colLo, colHi := orderedRange(minCell.Col, maxCell.Col)
	for c := max(colLo, 0); c <= min(colHi, g.config.Cols-1); c++ {
		fn(&g.cols[c])
	}
}

// InRow reports whether e covers row r.
func (g *ImplicitGrid) InRow(e ecs.Entity, r int) bool {
	return r >= 0 && r < len(g.rows) && g.rows[r].Has(e)
}

// InCol reports whether e covers column c.
func (g *ImplicitGrid) InCol(e ecs.Entity, c int) bool {
	return c >= 0 && c < len(g.cols) && g.cols[c].Has(e)
}

// Placement returns how e was classified this tick.
func (g *ImplicitGrid) Placement(e ecs.Entity) GridPlacement {
	switch {
	case g.inside.Has(e):
		return GridInside
	case g.overlap.Has(e):
		return GridOverlap
	default:
		return GridOutside
	}
}

// SharesCell reports whether a and b cover at least one common cell. Each
// entity covers a rectangle of cells, so one shared row plus one shared
// column is enough.
func (g *ImplicitGrid) SharesCell(a, b ecs.Entity) bool {
	sharedRow := false
	for r := range g.rows {
		if g.rows[r].Has(a) && g.rows[r].Has(b) {
			sharedRow = true
			break
		}
	}
	if !sharedRow {
		return false
	}
	for c := range g.cols {
		if g.cols[c].Has(a) && g.cols[c].Has(b) {
			return true
		}
	}
	return false
}

func (g *ImplicitGrid) Inside() []ecs.Entity  { return g.inside.Entities() }
func (g *ImplicitGrid) Overlap() []ecs.Entity { return g.overlap.Entities() }
func (g *ImplicitGrid) Outside() []ecs.Entity { return g.outside.Entities() }

// Lines returns the world-space segments of the cell boundaries, used by the
// debug overlay.
func (g *ImplicitGrid) Lines() [][2]cp.Vector {
	cellW, cellH := g.CellSize()
	if cellW <= 0 || cellH <= 0 {
		return nil
	}
	o := g.origin()
	w := cellW * float64(g.config.Cols)
	h := cellH * float64(g.config.Rows)
	lines := make([][2]cp.Vector, 0, g.config.Rows+g.config.Cols+2)
	for r := 0; r <= g.config.Rows; r++ {
		y := o.Y + float64(r)*cellH
		lines = append(lines, [2]cp.Vector{{X: o.X, Y: y}, {X: o.X + w, Y: y}})
	}
	for c := 0; c <= g.config.Cols; c++ {
		x := o.X + float64(c)*cellW
		lines = append(lines, [2]cp.Vector{{X: x, Y: o.Y}, {X: x, Y: o.Y + h}})
	}
	return lines
}

func orderedRange(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}
