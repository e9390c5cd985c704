package world

import (
	"fmt"
	"strings"
)

// RenderASCII draws the cells around center as a character map.
// This is used for debugging and by the `quest world` command.
//
// Format:
//   - house='H', tree='T', empty='.'
//   - the center cell is bracketed on its row
func RenderASCII(g *Generator, center Coord, radius int) string {
	var sb strings.Builder

	houses, trees := 0, 0
	var rows []string
	for gy := center.Y - radius; gy <= center.Y+radius; gy++ {
		var row strings.Builder
		for gx := center.X - radius; gx <= center.X+radius; gx++ {
			cell := g.CellAt(gx, gy)
			ch := '.'
			switch cell.Variant {
			case VariantHouse:
				ch = 'H'
				houses++
			case VariantTree:
				ch = 'T'
				trees++
			}
			if gx == center.X && gy == center.Y {
				row.WriteString(fmt.Sprintf("[%c]", ch))
			} else {
				row.WriteString(fmt.Sprintf(" %c ", ch))
			}
		}
		rows = append(rows, strings.TrimRight(row.String(), " "))
	}

	sb.WriteString(fmt.Sprintf("Center: %s | Radius: %d | Houses: %d | Trees: %d\n",
		center, radius, houses, trees))
	sb.WriteString(strings.Repeat("-", (2*radius+1)*3) + "\n")
	for _, r := range rows {
		sb.WriteString(r)
		sb.WriteString("\n")
	}
	return sb.String()
}
