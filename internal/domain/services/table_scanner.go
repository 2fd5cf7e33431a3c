package services

import "strings"

// Glyphs of the analyzer's box-drawn library table
const (
	tableBorder      = "│"
	tableBottomLeft  = "└"
	tableBottomRight = "┘"
	tableHeaderToken = "Library"
)

// tableState is the position of the scanner relative to the library table
type tableState int

const (
	outsideTable tableState = iota
	insideTable
)

func (s tableState) String() string {
	if s == insideTable {
		return "InsideTable"
	}
	return "OutsideTable"
}

// tableRow is an accepted row of the library table
type tableRow struct {
	Name         string
	Architecture string
	Alignment    string
	StatusText   string
}

// tableScanner is a two-state machine that extracts library rows from
// trimmed analyzer output lines.
//
//	OutsideTable --header--> InsideTable
//	InsideTable  --header--> InsideTable
//	InsideTable  --bottom--> OutsideTable
type tableScanner struct {
	state tableState
}

// Feed consumes one trimmed line and returns the row it carries, if any
func (s *tableScanner) Feed(line string) (tableRow, bool) {
	if isTableHeader(line) {
		s.state = insideTable
		return tableRow{}, false
	}

	if s.state != insideTable {
		return tableRow{}, false
	}

	if isTableBottom(line) {
		s.state = outsideTable
		return tableRow{}, false
	}

	if !strings.Contains(line, tableBorder) {
		return tableRow{}, false
	}

	cells := splitCells(line)
	if len(cells) < 4 {
		return tableRow{}, false
	}

	return tableRow{
		Name:         cells[0],
		Architecture: cells[1],
		Alignment:    cells[2],
		StatusText:   cells[3],
	}, true
}

// State returns the current state
func (s *tableScanner) State() tableState {
	return s.state
}

func isTableHeader(line string) bool {
	return strings.Contains(line, tableBorder) && strings.Contains(line, tableHeaderToken)
}

func isTableBottom(line string) bool {
	return strings.Contains(line, tableBottomLeft) && strings.Contains(line, tableBottomRight)
}

// splitCells splits a row on the border glyph, dropping empty cells
func splitCells(line string) []string {
	parts := strings.Split(line, tableBorder)
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			cells = append(cells, p)
		}
	}
	return cells
}
