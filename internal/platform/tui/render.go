package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/okazmirenko/twenty48/internal/anim"
	"github.com/okazmirenko/twenty48/internal/core"
	"github.com/okazmirenko/twenty48/internal/engine"
	"github.com/okazmirenko/twenty48/internal/game"
)

const (
	cellWidth  = 7 // interior 6 chars, fits five-digit tiles
	cellHeight = 2 // interior 1 row
	hudHeight  = 3

	boardW = engine.BoardSize*cellWidth + 1
	boardH = engine.BoardSize*cellHeight + 1

	// MinScreenW and MinScreenH are the smallest terminal the board fits in.
	MinScreenW = boardW + 2
	MinScreenH = hudHeight + boardH + 2
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorBrightCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same color are grouped to minimize ANSI escapes.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

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

// tileColor maps a tile value to its display color, doubling through the
// classic warm-to-cool progression.
func tileColor(value int) core.Color {
	switch value {
	case 2:
		return core.ColorWhite
	case 4:
		return core.ColorBrightWhite
	case 8:
		return core.ColorYellow
	case 16:
		return core.ColorBrightYellow
	case 32:
		return core.ColorOrange
	case 64:
		return core.ColorRed
	case 128:
		return core.ColorBrightRed
	case 256:
		return core.ColorMagenta
	case 512:
		return core.ColorBrightMagenta
	case 1024:
		return core.ColorCyan
	case 2048:
		return core.ColorBrightCyan
	default:
		return core.ColorBrightGreen
	}
}

// drawGame renders one full frame: HUD, grid, tiles, overlays.
func drawGame(dst *core.Screen, sess *game.Session, best int, winBanner bool) {
	dst.Clear()

	if dst.Width() < MinScreenW || dst.Height() < MinScreenH {
		drawTooSmall(dst)
		return
	}

	boardX := (dst.Width() - boardW) / 2
	boardY := hudHeight + 1

	// Whole-board horizontal displacement for invalid-move feedback.
	boardX += int(math.Round(sess.ShakeOffset() * cellWidth))

	drawHUD(dst, sess, best, boardX)
	drawGrid(dst, boardX, boardY)
	drawTiles(dst, sess.Visuals(), boardX, boardY)
	drawHelp(dst, boardY+boardH+1)

	centerX := boardX + boardW/2
	centerY := boardY + boardH/2

	if sess.GameOver() {
		lines := []string{"GAME OVER", fmt.Sprintf("Max tile: %d", sess.MaxTile())}
		if sess.Won() {
			lines[0] = "GAME OVER · YOU WON"
		}
		lines = append(lines, "R: restart  Q: quit")
		drawOverlay(dst, centerX, centerY, lines...)
		return
	}

	if winBanner {
		target := strconv.Itoa(sess.WinTarget())
		drawOverlay(dst, centerX, centerY,
			"YOU WIN!",
			target+" reached",
			"Any key to keep playing")
	}
}

func drawTooSmall(dst *core.Screen) {
	dst.DrawTextCentered(dst.Height()/2, "Window too small")
	dst.DrawTextCentered(dst.Height()/2+1, "Please resize terminal")
}

func drawHUD(dst *core.Screen, sess *game.Session, best, boardX int) {
	title := "twenty48"
	dst.DrawTextColored(boardX+(boardW-len(title))/2, 0, title, core.ColorBrightYellow)

	scoreStr := fmt.Sprintf("Score: %d", sess.Score())
	dst.DrawTextColored(boardX, 1, scoreStr, core.ColorBrightWhite)

	rightStr := fmt.Sprintf("Best: %d  Target: %d", best, sess.WinTarget())
	rightX := boardX + boardW - len(rightStr)
	if rightX < boardX+len(scoreStr)+2 {
		rightX = boardX + len(scoreStr) + 2
	}
	dst.DrawText(rightX, 1, rightStr)

	elapsed := int(sess.Elapsed().Seconds())
	infoStr := fmt.Sprintf("Moves: %d  Time: %d:%02d", sess.MoveCount(), elapsed/60, elapsed%60)
	if sess.Won() {
		infoStr += "  ★"
	}
	dst.DrawTextColored(boardX, 2, infoStr, core.ColorGray)
}

// drawGrid draws the 4x4 frame with box-drawing characters.
func drawGrid(dst *core.Screen, boardX, boardY int) {
	for y := range engine.BoardSize + 1 {
		for x := range engine.BoardSize + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == engine.BoardSize:
				corner = '┐'
			case y == engine.BoardSize && x == 0:
				corner = '└'
			case y == engine.BoardSize && x == engine.BoardSize:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == engine.BoardSize:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == engine.BoardSize:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetColored(px, py, corner, core.ColorGray)

			if x < engine.BoardSize {
				for i := 1; i < cellWidth; i++ {
					dst.SetColored(px+i, py, '─', core.ColorGray)
				}
			}
			if y < engine.BoardSize {
				for i := 1; i < cellHeight; i++ {
					dst.SetColored(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}
}

// drawTiles places each tile at its (possibly fractional) position. During
// motion a tile's Row/Col interpolate between cells; the character grid
// rounds that to the nearest column.
func drawTiles(dst *core.Screen, visuals []anim.TileVisual, boardX, boardY int) {
	for _, v := range visuals {
		px := boardX + int(math.Round(v.Col*cellWidth)) + 1
		py := boardY + int(math.Round(v.Row*cellHeight)) + 1

		label := strconv.Itoa(v.Value)
		switch {
		case v.Scale < 0.35:
			// Spawn pop just starting; a dot reads as "something arriving".
			label = "·"
		case v.Scale > 1.1:
			// Merge bounce peak.
			label = "»" + label + "«"
		}

		interior := cellWidth - 1
		pad := (interior - len([]rune(label))) / 2
		if pad < 0 {
			pad = 0
		}
		dst.DrawTextColored(px+pad, py, label, tileColor(v.Value))
	}
}

func drawHelp(dst *core.Screen, y int) {
	dst.DrawTextCentered(y, "←↑↓→ move · n new game · q quit")
}

// drawOverlay draws a centered boxed message on top of the board.
func drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	boxX := centerX - boxW/2
	boxY := centerY - boxH/2

	for y := boxY; y < boxY+boxH; y++ {
		for x := boxX; x < boxX+boxW; x++ {
			dst.Set(x, y, ' ')
		}
	}

	dst.DrawBox(core.Rect{X: boxX, Y: boxY, W: boxW, H: boxH})

	for i, line := range lines {
		x := centerX - len([]rune(line))/2
		dst.DrawTextColored(x, boxY+1+i, line, core.ColorBrightWhite)
	}
}
