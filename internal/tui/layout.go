package tui

import "github.com/charmbracelet/lipgloss"

// sectionSeparator puts one blank line between page blocks
const sectionSeparator = "\n\n"

// sectionGap is the number of rows the separator adds between blocks
const sectionGap = 1

// pageLayout holds the rendered page blocks and where the pickers start
type pageLayout struct {
	blocks    []string
	richTop   int // first row of the rich picker widget
	simpleTop int // first row of the inline picker widget
}

// CalculateSectionOffsets returns the first row of each block when blocks of
// the given heights are stacked with sectionSeparator between them.
// Negative heights count as zero.
func CalculateSectionOffsets(heights ...int) []int {
	offsets := make([]int, len(heights))
	row := 0
	for i, h := range heights {
		offsets[i] = row
		if h < 0 {
			h = 0
		}
		row += h + sectionGap
	}
	return offsets
}

// layout renders every block once and records the picker origins, so mouse
// routing and View always agree
func (m *Model) layout() pageLayout {
	header := m.headerView()
	rich := m.sectionView(VariantRich, m.rich.View())
	simple := m.sectionView(VariantSimple, m.simple.View())
	summary := m.summaryView()
	controls := m.controlsView()

	offsets := CalculateSectionOffsets(
		lipgloss.Height(header),
		lipgloss.Height(rich),
		lipgloss.Height(simple),
		lipgloss.Height(summary),
		lipgloss.Height(controls),
	)

	// Each picker sits below its one-line section title
	return pageLayout{
		blocks:    []string{header, rich, simple, summary, controls},
		richTop:   offsets[1] + 1,
		simpleTop: offsets[2] + 1,
	}
}
