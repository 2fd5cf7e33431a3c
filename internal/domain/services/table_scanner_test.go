package services

import "testing"

func TestTableScanner_Transitions(t *testing.T) {
	steps := []struct {
		line      string
		wantState tableState
		wantRow   bool
	}{
		{"┌────┬────┐", outsideTable, false},
		{"│ libstray.so │ arm64-v8a │ 4096 │ FAIL │", outsideTable, false},
		{"│ Library │ Architecture │ Alignment │ Status │", insideTable, false},
		{"├────┼────┤", insideTable, false},
		{"│ liba.so │ arm64-v8a │ 2**14 │ PASS │", insideTable, true},
		{"plain text inside the table", insideTable, false},
		{"│ Library │ again │", insideTable, false},
		{"│ libb.so │ x86 │ 4096 │ FAIL │", insideTable, true},
		{"└────┴────┘", outsideTable, false},
		{"└────┴────┘", outsideTable, false},
		{"│ libc.so │ x86 │ 4096 │ FAIL │", outsideTable, false},
	}

	s := &tableScanner{}
	if s.State() != outsideTable {
		t.Fatalf("initial state = %v, want OutsideTable", s.State())
	}

	for i, step := range steps {
		_, gotRow := s.Feed(step.line)
		if gotRow != step.wantRow {
			t.Errorf("step %d (%q): row = %v, want %v", i, step.line, gotRow, step.wantRow)
		}
		if s.State() != step.wantState {
			t.Errorf("step %d (%q): state = %v, want %v", i, step.line, s.State(), step.wantState)
		}
	}
}

func TestTableScanner_RowCells(t *testing.T) {
	s := &tableScanner{state: insideTable}

	row, ok := s.Feed("│  libflutter.so │arm64-v8a│ 4096 │ ✗ FAIL │")
	if !ok {
		t.Fatal("Feed() did not accept a four-cell row")
	}

	want := tableRow{Name: "libflutter.so", Architecture: "arm64-v8a", Alignment: "4096", StatusText: "✗ FAIL"}
	if row != want {
		t.Errorf("Feed() row = %+v, want %+v", row, want)
	}
}

func TestSplitCells(t *testing.T) {
	tests := []struct {
		line string
		want int
	}{
		{"│ a │ b │ c │ d │", 4},
		{"a│b", 2},
		{"│ │  │", 0},
		{"no border", 1},
	}

	for _, tt := range tests {
		if got := len(splitCells(tt.line)); got != tt.want {
			t.Errorf("len(splitCells(%q)) = %d, want %d", tt.line, got, tt.want)
		}
	}
}
