package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-quest/internal/core"
	"github.com/vovakirdan/tui-quest/internal/games/quest"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:         lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:      lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:         lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:        lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightWhite:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:       lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorDarkGreen:    lipgloss.NewStyle().Foreground(lipgloss.Color("22")),
	core.ColorBrown:        lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
	core.ColorPurple:       lipgloss.NewStyle().Foreground(lipgloss.Color("129")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// glyph is how one sprite looks in a terminal cell.
type glyph struct {
	fill  rune
	color core.Color
}

var sprites = map[quest.Sprite]glyph{
	quest.SpriteHouse:     {'#', core.ColorBrown},
	quest.SpriteTree:      {'♣', core.ColorDarkGreen},
	quest.SpriteChest:     {'=', core.ColorYellow},
	quest.SpriteChestOpen: {'_', core.ColorBrightYellow},
	quest.SpriteGrunt:     {'g', core.ColorRed},
	quest.SpriteBoss:      {'B', core.ColorPurple},
	quest.SpritePlayer:    {'@', core.ColorBrightWhite},
	quest.SpriteFireball:  {'*', core.ColorOrange},
	quest.SpriteParticle:  {'·', core.ColorYellow},
}

// hudRows is the number of screen rows reserved for the status line.
const hudRows = 1

// Rasterizer draws quest frames into a character screen. The viewport
// (world units) is stretched over the screen area below the status line.
type Rasterizer struct {
	viewW float64
	viewH float64
}

// NewRasterizer creates a rasterizer for a viewport of the given world size.
func NewRasterizer(viewW, viewH float64) *Rasterizer {
	return &Rasterizer{viewW: viewW, viewH: viewH}
}

// scale returns world units per cell along each axis.
func (r *Rasterizer) scale(s *core.Screen) (sx, sy float64) {
	rows := max(s.Height()-hudRows, 1)
	cols := max(s.Width(), 1)
	return r.viewW / float64(cols), r.viewH / float64(rows)
}

// ToCell converts a world position to a screen cell.
func (r *Rasterizer) ToCell(s *core.Screen, camera, p core.Vec2) (x, y int) {
	sx, sy := r.scale(s)
	return core.FloorDiv(p.X-camera.X, sx), core.FloorDiv(p.Y-camera.Y, sy) + hudRows
}

// ToViewport converts a screen cell (e.g. a mouse position) to viewport
// coordinates, taking the cell's center.
func (r *Rasterizer) ToViewport(s *core.Screen, x, y int) core.Vec2 {
	sx, sy := r.scale(s)
	return core.V((float64(x)+0.5)*sx, (float64(y-hudRows)+0.5)*sy)
}

// cellRect converts a world box to a screen rectangle at least one cell large.
func (r *Rasterizer) cellRect(s *core.Screen, camera core.Vec2, b core.Box) core.Rect {
	x0, y0 := r.ToCell(s, camera, b.Min)
	sx, sy := r.scale(s)
	w := max(int(math.Round(b.W/sx)), 1)
	h := max(int(math.Round(b.H/sy)), 1)
	return core.NewRect(x0, y0, w, h)
}

// Draw rasterizes f. Items are painted in list order, so later items cover
// earlier ones.
func (r *Rasterizer) Draw(s *core.Screen, f quest.Frame) {
	s.Clear()
	switch f.Scene {
	case quest.SceneMenu:
		r.drawTitle(s)
		return
	case quest.SceneDefeated:
		// The host shows the ledger view instead
		return
	}

	r.drawBackground(s, f)
	for _, it := range f.Items {
		r.drawItem(s, f.Camera, it)
	}
	if f.Arc != nil {
		r.drawArc(s, f)
	}
	r.drawHUD(s, f.HUD)
}

// drawBackground tiles the ground. Grass tufts are anchored to world
// coordinates so they scroll with the camera.
func (r *Rasterizer) drawBackground(s *core.Screen, f quest.Frame) {
	if f.Background == quest.SpriteFloorBoard {
		for y := hudRows; y < s.Height(); y++ {
			for x := range s.Width() {
				s.SetColored(x, y, '.', core.ColorBrown)
			}
		}
		return
	}

	sx, sy := r.scale(s)
	for y := hudRows; y < s.Height(); y++ {
		for x := range s.Width() {
			wx := core.FloorDiv(f.Camera.X+float64(x)*sx, 40)
			wy := core.FloorDiv(f.Camera.Y+float64(y-hudRows)*sy, 40)
			if (wx*7+wy*13)%11 == 0 {
				s.SetColored(x, y, ',', core.ColorGreen)
			}
		}
	}
}

func (r *Rasterizer) drawItem(s *core.Screen, camera core.Vec2, it quest.DrawItem) {
	g, ok := sprites[it.Sprite]
	if !ok {
		return
	}
	rect := r.cellRect(s, camera, it.Box)

	switch it.Sprite {
	case quest.SpriteHouse:
		s.DrawRect(rect, g.fill, g.color)
		s.DrawBox(rect, core.ColorBrown)
		// Doorway at the bottom center
		s.SetColored(rect.X+rect.W/2, rect.Bottom()-1, '▯', core.ColorYellow)
	case quest.SpriteFireball, quest.SpriteParticle, quest.SpritePlayer:
		cx, cy := r.ToCell(s, camera, it.Box.Center())
		s.SetColored(cx, cy, g.fill, g.color)
	default:
		s.DrawRect(rect, g.fill, g.color)
	}

	if it.HasHealth {
		bar := core.ColorRed
		if it.Sprite == quest.SpriteBoss {
			bar = core.ColorPurple
		}
		drawBar(s, rect.X, rect.Y-1, rect.W, it.Health, bar)
	}
}

// drawBar draws a horizontal gauge of width cells filled to frac.
func drawBar(s *core.Screen, x, y, width int, frac float64, c core.Color) {
	filled := int(math.Round(core.ClampF(frac, 0, 1) * float64(width)))
	for i := range width {
		if i < filled {
			s.SetColored(x+i, y, '█', c)
		} else {
			s.SetColored(x+i, y, '░', core.ColorGray)
		}
	}
}

// drawArc draws the sword as a short ray from the player along the arc angle.
func (r *Rasterizer) drawArc(s *core.Screen, f quest.Frame) {
	a := f.Arc
	center := f.Camera.Add(core.V(r.viewW/2, r.viewH/2))
	blade := bladeRune(a.Angle)
	for _, k := range []float64{0.35, 0.55, 0.75, 0.95} {
		x, y := r.ToCell(s, f.Camera, center.Add(core.FromAngle(a.Angle, a.Range*k)))
		s.SetColored(x, y, blade, core.ColorBrightWhite)
	}
}

// bladeRune picks the line character closest to angle (screen y grows down).
func bladeRune(angle float64) rune {
	deg := math.Mod(angle*180/math.Pi+360, 180)
	switch {
	case deg < 22.5 || deg >= 157.5:
		return '-'
	case deg < 67.5:
		return '\\'
	case deg < 112.5:
		return '|'
	default:
		return '/'
	}
}

func (r *Rasterizer) drawHUD(s *core.Screen, h quest.HUD) {
	s.DrawHLine(0, 0, s.Width(), ' ', core.ColorDefault)

	x := 0
	s.DrawText(x, 0, "HP ", core.ColorWhite)
	x += 3
	drawBar(s, x, 0, 10, h.Health/h.MaxHealth, core.ColorBrightRed)
	x += 11

	if h.MaxMana > 0 {
		s.DrawText(x, 0, "MP ", core.ColorWhite)
		x += 3
		drawBar(s, x, 0, 10, h.Mana/h.MaxMana, core.ColorBrightBlue)
		x += 11
	}

	weapon := h.Mode.String()
	if !h.RangedUnlocked {
		weapon += " (fireball locked)"
	}
	info := fmt.Sprintf("Kills %d  %s", h.Kills, weapon)
	s.DrawText(x+1, 0, info, core.ColorBrightYellow)
}

func (r *Rasterizer) drawTitle(s *core.Screen) {
	mid := s.Height() / 2
	s.DrawTextCentered(mid-3, "T U I   Q U E S T", core.ColorBrightYellow)
	s.DrawTextCentered(mid-1, "Explore the wilds, find the chest, survive the horde.", core.ColorWhite)
	s.DrawTextCentered(mid+1, "Press Enter to begin", core.ColorBrightGreen)
	s.DrawTextCentered(mid+3, "WASD move · Space/click attack · E open · R switch weapon", core.ColorGray)
}
