package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/obst/pkg/obst"
	"github.com/matzehuels/obst/pkg/render/text"
)

// Explorer styles
var (
	exploreCursorStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("0")).Background(colorYellow)
	exploreChosenStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(colorGreen)
	exploreDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ExploreModel - Interactive DP table explorer
// =============================================================================

// ExploreModel is the bubbletea model for browsing the cost and root tables.
// The cursor only visits defined cells (Row ≤ Col); the candidate roots of
// the cell under the cursor are listed below the table.
type ExploreModel struct {
	Result   *obst.Result
	Row, Col int
	ShowRoot bool // show the root table instead of the cost table
}

// NewExploreModel creates an explorer positioned on the whole interval
// [0, n-1].
func NewExploreModel(res *obst.Result) ExploreModel {
	return ExploreModel{Result: res, Col: max(res.Len()-1, 0)}
}

func (m ExploreModel) Init() tea.Cmd {
	return nil
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	n := m.Result.Len()
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Row > 0 {
			m.Row--
		}
	case "down", "j":
		if m.Row < m.Col {
			m.Row++
		}
	case "left", "h":
		if m.Col > m.Row {
			m.Col--
		}
	case "right", "l":
		if m.Col < n-1 {
			m.Col++
		}
	case "tab", "t":
		m.ShowRoot = !m.ShowRoot
	case "home", "g":
		m.Row, m.Col = 0, max(n-1, 0)
	}
	return m, nil
}

func (m ExploreModel) View() string {
	var b strings.Builder

	name := "Cost table"
	if m.ShowRoot {
		name = "Root table"
	}
	b.WriteString(StyleTitle.Render(name))
	b.WriteString("  ")
	b.WriteString(exploreDimStyle.Render("←↑↓→ move  tab cost/root  g whole range  q quit"))
	b.WriteString("\n\n")

	opts := append(tableOptions(), text.WithCellStyle(func(row, col int) lipgloss.Style {
		switch {
		case row == m.Row && col == m.Col:
			return exploreCursorStyle
		case row == col:
			return styleDiagonal
		}
		return styleTableCell
	}))
	if m.ShowRoot {
		b.WriteString(text.RootTable(m.Result, opts...))
	} else {
		b.WriteString(text.CostTable(m.Result, opts...))
	}
	b.WriteString("\n\n")

	cands, ok := m.Result.Candidates(m.Row, m.Col)
	if !ok {
		return b.String()
	}
	fmt.Fprintf(&b, "%s %s\n", StyleTitle.Render(fmt.Sprintf("Interval [%d, %d]", m.Row, m.Col)),
		exploreDimStyle.Render(fmt.Sprintf("%s … %s", m.Result.Keys[m.Row], m.Result.Keys[m.Col])))
	b.WriteString(candidateTable(cands, chosenIndex(cands)))
	b.WriteString("\n")
	return b.String()
}

// chosenIndex returns the position of the chosen candidate, or -1.
func chosenIndex(cands []obst.Candidate) int {
	for i, c := range cands {
		if c.Chosen {
			return i
		}
	}
	return -1
}

// candidateTable lists candidate roots with their subtree costs. The row at
// highlight is drawn in the chosen style; -1 highlights nothing and marks
// the chosen root with a star instead.
func candidateTable(cands []obst.Candidate, highlight int) string {
	rows := make([][]string, len(cands))
	for i, c := range cands {
		mark := ""
		if c.Chosen {
			mark = "★"
		}
		rows[i] = []string{
			mark,
			strconv.Itoa(c.Root),
			c.Key,
			text.FormatNumber(c.Left),
			text.FormatNumber(c.Right),
			text.FormatNumber(c.Sum),
			text.FormatNumber(c.Total),
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleTableBorder).
		Headers("", "root", "key", "left", "right", "sum", "total").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleTableHeader
			}
			if row == highlight {
				return exploreChosenStyle
			}
			return styleTableCell
		}).
		Render()
}
