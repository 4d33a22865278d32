package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"skyseat-cli/seatmap"
)

func (m appModel) renderSeatMap() string {
	if m.normalized.Empty() || len(m.plans) == 0 {
		return "No seat map available."
	}

	var b strings.Builder
	for deckIdx, dp := range m.plans {
		if deckIdx > 0 {
			b.WriteString("\n")
		}
		if dp.Label != "" {
			b.WriteString(lipgloss.NewStyle().Bold(true).Render(dp.Label))
			b.WriteString("\n")
		}
		m.renderDeck(&b, deckIdx, dp.Plan)
	}

	b.WriteString("\n")
	b.WriteString(m.legendView())
	if m.toast != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Bold(true).Render(m.toast))
	}
	return b.String()
}

func (m appModel) renderDeck(b *strings.Builder, deckIdx int, plan seatmap.RenderPlan) {
	compact := plan.Compact() || !m.showNumbers
	cellWidth := 2
	if !compact {
		for _, row := range plan.Rows {
			for _, item := range row.Items {
				if item.Kind == seatmap.ItemSeat && len(item.Seat.Number) > cellWidth {
					cellWidth = len(item.Seat.Number)
				}
			}
		}
	}
	const gapWidth = 1

	rowLabelWidth := 2
	for _, row := range plan.Rows {
		if l := len(fmt.Sprintf("%d", row.Row)); l > rowLabelWidth {
			rowLabelWidth = l
		}
	}

	gridWidth := plan.MaxCols*cellWidth + (plan.MaxCols-1)*gapWidth
	nose := noseBlock(gridWidth, "FRONT")
	noseStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	indent := strings.Repeat(" ", rowLabelWidth+1)
	b.WriteString(indent + noseStyle.Render(nose.top) + "\n")
	b.WriteString(indent + noseStyle.Render(nose.mid) + "\n")
	b.WriteString(indent + noseStyle.Render(nose.bot) + "\n")

	for rowIdx, row := range plan.Rows {
		label := fmt.Sprintf("%d", row.Row)
		b.WriteString(fmt.Sprintf("%*s ", rowLabelWidth, label))

		seatIdx := 0
		for i, item := range row.Items {
			if i > 0 {
				b.WriteString(strings.Repeat(" ", gapWidth))
			}
			if item.Kind == seatmap.ItemSpacer {
				// Spacers cover whole grid columns plus the gaps between
				// them, keeping every row the same rendered width.
				b.WriteString(strings.Repeat(" ", item.Span*cellWidth+(item.Span-1)*gapWidth))
				continue
			}
			seat := *item.Seat
			underCursor := deckIdx == m.cursorDeck && rowIdx == m.cursorRow && seatIdx == m.cursorSeat
			b.WriteString(m.renderSeat(seat, cellWidth, compact, underCursor))
			seatIdx++
		}
		b.WriteString(fmt.Sprintf(" %s\n", label))
	}
}

func (m appModel) renderSeat(seat seatmap.Seat, cellWidth int, compact bool, underCursor bool) string {
	text := seat.Number
	if compact {
		text = seatmap.GlyphFor(seat.Cabin)
	}

	colors := seatmap.StyleFor(seat.Status, m.selection.IsSelected(seat.Number))
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Text)).
		Background(lipgloss.Color(colors.Body))
	if underCursor {
		style = style.Reverse(true).Bold(true)
	}
	return style.Render(padCell(text, cellWidth))
}

func (m appModel) legendView() string {
	swatch := func(status seatmap.Status, label string) string {
		c := seatmap.StyleFor(status, false)
		chip := lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Text)).
			Background(lipgloss.Color(c.Body)).
			Render("  ")
		return chip + " " + label
	}
	selChip := lipgloss.NewStyle().
		Foreground(lipgloss.Color(seatmap.StyleFor(seatmap.StatusAvailable, true).Text)).
		Background(lipgloss.Color(seatmap.StyleFor(seatmap.StatusAvailable, true).Body)).
		Render("  ")

	parts := []string{
		swatch(seatmap.StatusAvailable, "available"),
		swatch(seatmap.StatusOccupied, "occupied"),
		swatch(seatmap.StatusBlocked, "blocked"),
		selChip + " selected",
	}
	return hint(strings.Join(parts, "  "))
}

// padCell centers text within width, truncating when it does not fit.
func padCell(text string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) >= width {
		return string(runes[:width])
	}
	padding := width - len(runes)
	left := padding / 2
	right := padding - left
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", right)
}

type noseBar struct {
	top string
	mid string
	bot string
}

// noseBlock draws the cockpit marker above a deck grid.
func noseBlock(width int, label string) noseBar {
	if width < len(label)+4 {
		width = len(label) + 4
	}
	if width < 10 {
		width = 10
	}

	top := "╭" + strings.Repeat("─", width-2) + "╮"
	bot := "╰" + strings.Repeat("─", width-2) + "╯"

	labelText := " " + label + " "
	padding := width - len(labelText) - 2
	left := padding / 2
	right := padding - left
	mid := "│" + strings.Repeat(" ", left) + labelText + strings.Repeat(" ", right) + "│"
	return noseBar{top: top, mid: mid, bot: bot}
}
