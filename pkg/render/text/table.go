package text

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/obst/pkg/obst"
)

// Placeholder marks table cells of empty intervals.
const Placeholder = "-"

// headerRow is the row index lipgloss passes to StyleFunc for headers.
const headerRow = -1

// CostCells returns the cost table as strings. Cells with i > j hold
// [Placeholder].
func CostCells(res *obst.Result) [][]string {
	return cells(res.Len(), func(i, j int) string {
		return FormatNumber(res.Cost.At(i, j))
	})
}

// RootCells returns the root table as "r (key)" strings. Cells with i > j
// hold [Placeholder].
func RootCells(res *obst.Result) [][]string {
	return cells(res.Len(), func(i, j int) string {
		r := res.Root.At(i, j)
		return strconv.Itoa(r) + " (" + res.Keys[r] + ")"
	})
}

func cells(n int, cell func(i, j int) string) [][]string {
	out := make([][]string, n)
	for i := range out {
		out[i] = make([]string, n)
		for j := range out[i] {
			if i > j {
				out[i][j] = Placeholder
				continue
			}
			out[i][j] = cell(i, j)
		}
	}
	return out
}

// TableOption customizes rendered tables.
type TableOption func(*tableConfig)

type tableConfig struct {
	border      lipgloss.Border
	borderStyle lipgloss.Style
	header      lipgloss.Style
	cell        func(row, col int) lipgloss.Style
}

// WithBorder sets the border drawn around tables.
func WithBorder(b lipgloss.Border, style lipgloss.Style) TableOption {
	return func(c *tableConfig) { c.border, c.borderStyle = b, style }
}

// WithHeaderStyle styles the header row and the index column.
func WithHeaderStyle(s lipgloss.Style) TableOption {
	return func(c *tableConfig) { c.header = s }
}

// WithCellStyle styles body cells. row and col index the DP table, so
// col == row is the diagonal.
func WithCellStyle(fn func(row, col int) lipgloss.Style) TableOption {
	return func(c *tableConfig) { c.cell = fn }
}

// Plain drops bold headers so output holds no terminal escape codes.
func Plain() TableOption {
	return func(c *tableConfig) { c.header = lipgloss.NewStyle().Padding(0, 1) }
}

// CostTable renders the cost table with index headers.
func CostTable(res *obst.Result, opts ...TableOption) string {
	return renderMatrix(CostCells(res), opts)
}

// RootTable renders the root table with index headers.
func RootTable(res *obst.Result, opts ...TableOption) string {
	return renderMatrix(RootCells(res), opts)
}

// KeysTable renders the sorted keys with their indices and frequencies.
func KeysTable(res *obst.Result, opts ...TableOption) string {
	cfg := newTableConfig(opts)
	rows := make([][]string, res.Len())
	for i, k := range res.Keys {
		rows[i] = []string{strconv.Itoa(i), k, FormatNumber(res.Frequencies[i])}
	}
	return table.New().
		Border(cfg.border).
		BorderStyle(cfg.borderStyle).
		Headers("index", "key", "freq").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return cfg.header
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Render()
}

func renderMatrix(body [][]string, opts []TableOption) string {
	cfg := newTableConfig(opts)

	headers := make([]string, len(body)+1)
	headers[0] = `i\j`
	for j := range body {
		headers[j+1] = strconv.Itoa(j)
	}

	rows := make([][]string, len(body))
	for i, r := range body {
		rows[i] = append([]string{strconv.Itoa(i)}, r...)
	}

	return table.New().
		Border(cfg.border).
		BorderStyle(cfg.borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow || col == 0 {
				return cfg.header
			}
			if cfg.cell != nil {
				return cfg.cell(row, col-1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Render()
}

func newTableConfig(opts []TableOption) tableConfig {
	cfg := tableConfig{
		border:      lipgloss.NormalBorder(),
		borderStyle: lipgloss.NewStyle(),
		header:      lipgloss.NewStyle().Bold(true).Padding(0, 1),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
