package tui

import (
	"strings"

	"github.com/papapumpkin/golive/internal/civil"
	"github.com/papapumpkin/golive/internal/timeline"
	"github.com/papapumpkin/golive/internal/ui"
)

// labelWidth is the width of the stage-name column including the selection
// indicator.
const labelWidth = ui.LabelWidth + 2

// GanttView renders a horizontally scrollable window of a timeline.
type GanttView struct {
	Geometry *timeline.Geometry
	Today    civil.Date
	Selected int
	// XOffset is the first chart column shown.
	XOffset int
	Width   int
	// Height is the number of stage rows that fit on screen.
	Height int
}

// ChartWidth returns how many chart columns fit next to the label column.
func (v GanttView) ChartWidth() int {
	return max(1, v.Width-labelWidth-2)
}

// MaxOffset returns the largest useful XOffset.
func (v GanttView) MaxOffset() int {
	if v.Geometry == nil {
		return 0
	}
	return max(0, ui.Columns(*v.Geometry)-v.ChartWidth())
}

// firstRow returns the first row shown so that the selected row stays
// visible.
func (v GanttView) firstRow() int {
	if v.Height <= 0 || v.Selected < v.Height {
		return 0
	}
	return v.Selected - v.Height + 1
}

// View renders the tick header, the today marker and one line per stage.
func (v GanttView) View() string {
	if v.Geometry == nil {
		return styleDetailDim.Render("  (no dates to chart)")
	}
	g := *v.Geometry
	total := ui.Columns(g)
	width := v.ChartWidth()
	from := min(v.XOffset, max(0, total-1))
	to := min(total, from+width)
	blank := strings.Repeat(" ", labelWidth)
	sep := styleChartSep.Render(" │")

	var lines []string
	header := []rune(ui.HeaderLine(g, total))
	lines = append(lines, blank+sep+styleTickHeader.Render(string(header[from:to])))

	marker := ""
	if col := ui.TodayColumn(g, v.Today); col >= from && col < to {
		marker = strings.Repeat(" ", col-from) + styleToday.Render(ui.GlyphToday)
	}
	lines = append(lines, blank+sep+marker)

	first := v.firstRow()
	last := len(g.Rows)
	if v.Height > 0 {
		last = min(last, first+v.Height)
	}
	for i := first; i < last; i++ {
		lines = append(lines, v.renderRow(g.Rows[i], i == v.Selected)+sep+v.renderCells(g.Rows[i], from, to))
	}
	return strings.Join(lines, "\n")
}

func (v GanttView) renderRow(r timeline.Row, selected bool) string {
	name := TruncateWithEllipsis(r.Name, ui.LabelWidth)
	if selected {
		return padRight(styleSelectionIndicator.Render(selectionIndicator)+" "+styleRowSelected.Render(name), labelWidth)
	}
	return padRight("  "+styleRowNormal.Render(name), labelWidth)
}

// renderCells draws columns [from, to) of one row: planned bar first, actual
// bar on top.
func (v GanttView) renderCells(r timeline.Row, from, to int) string {
	cells := make([]string, to-from)
	for i := range cells {
		cells[i] = " "
	}
	paint := func(offset, width int, glyph string, render func(...string) string) {
		lo, hi := ui.CellSpan(offset, width)
		for c := max(lo, from); c <= hi && c < to; c++ {
			cells[c-from] = render(glyph)
		}
	}
	if r.HasPlanned {
		paint(r.PlannedOffsetPx, r.PlannedWidthPx, ui.GlyphPlanned, styleBarPlanned.Render)
	}
	if r.HasActual {
		paint(r.ActualOffsetPx, r.ActualWidthPx, ui.GlyphActual, barStyle(r.Color).Render)
	}
	return strings.Join(cells, "")
}
