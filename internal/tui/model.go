// Package tui is a terminal board inspector: walk the cursor over a board,
// select a piece and see where it may go.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"feudal/internal/feudal"
)

var glyphs = map[feudal.PieceKind]rune{
	feudal.King:        'k',
	feudal.Prince:      'p',
	feudal.Duke:        'd',
	feudal.Knight:      'n',
	feudal.Sergeant:    's',
	feudal.Pikeman:     'i',
	feudal.Squire:      'q',
	feudal.Archer:      'a',
	feudal.CastleInner: '#',
	feudal.CastleOuter: '+',
}

var (
	styleCursor  = lipgloss.NewStyle().Reverse(true)
	styleNormal  = lipgloss.NewStyle().Background(lipgloss.Color("22"))
	styleCapture = lipgloss.NewStyle().Background(lipgloss.Color("88"))
	styleSpecial = lipgloss.NewStyle().Background(lipgloss.Color("24"))
	styleRough   = lipgloss.NewStyle().Foreground(lipgloss.Color("178"))
	styleMount   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleStatus  = lipgloss.NewStyle().Faint(true)
)

type Model struct {
	board    *feudal.Board
	x, y     int
	selected *feudal.Piece
	moves    map[[2]int]feudal.MoveClass
	status   string
}

func NewModel(b *feudal.Board) Model {
	return Model{board: b, status: "arrows move, enter selects, esc clears, q quits"}
}

// Cursor returns the cell under the cursor.
func (m Model) Cursor() (int, int) { return m.x, m.y }

// Moves returns the highlighted destinations of the selected piece.
func (m Model) Moves() map[[2]int]feudal.MoveClass { return m.moves }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		m.y = max(0, m.y-1)
	case "down", "j":
		m.y = min(m.board.Height()-1, m.y+1)
	case "left", "h":
		m.x = max(0, m.x-1)
	case "right", "l":
		m.x = min(m.board.Width()-1, m.x+1)
	case "enter", " ":
		m.selectAtCursor()
	case "esc":
		m.selected, m.moves = nil, nil
	}
	return m, nil
}

func (m *Model) selectAtCursor() {
	occ := m.board.OccupantsAt(m.x, m.y)
	p := occ.Ground
	if p == nil {
		p = occ.Castle
	}
	if p == nil {
		m.selected, m.moves = nil, nil
		m.status = fmt.Sprintf("(%d, %d) is empty", m.x, m.y)
		return
	}
	sel := *p
	m.selected = &sel
	m.moves = make(map[[2]int]feudal.MoveClass)
	for _, mv := range feudal.GenerateMoves(m.board, sel) {
		m.moves[[2]int{mv.X, mv.Y}] = mv.Class
	}
	m.status = fmt.Sprintf("player %d %s at (%d, %d): %d moves", sel.Owner, sel.Kind, sel.X, sel.Y, len(m.moves))
}

func (m Model) View() string {
	var sb strings.Builder
	for y := 0; y < m.board.Height(); y++ {
		for x := 0; x < m.board.Width(); x++ {
			r := m.cellRune(x, y)
			cell := string(r)
			switch {
			case x == m.x && y == m.y:
				cell = styleCursor.Render(cell)
			case m.moves != nil:
				switch m.moves[[2]int{x, y}] {
				case feudal.Normal:
					cell = styleNormal.Render(cell)
				case feudal.Capture:
					cell = styleCapture.Render(cell)
				case feudal.Special:
					cell = styleSpecial.Render(cell)
				}
			case r == 'h':
				cell = styleRough.Render(cell)
			case r == 'm':
				cell = styleMount.Render(cell)
			}
			sb.WriteString(cell)
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(styleStatus.Render(m.status))
	sb.WriteByte('\n')
	return sb.String()
}

// cellRune shows the ground piece, else the castle, else the terrain. Odd
// players' pieces are upper case.
func (m Model) cellRune(x, y int) rune {
	occ := m.board.OccupantsAt(x, y)
	p := occ.Ground
	if p == nil {
		p = occ.Castle
	}
	if p != nil {
		r := glyphs[p.Kind]
		if p.Owner%2 == 1 && r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		return r
	}
	t, _ := m.board.TileAt(x, y)
	switch t {
	case feudal.Rough:
		return 'h'
	case feudal.Impassable:
		return 'm'
	}
	return '.'
}
