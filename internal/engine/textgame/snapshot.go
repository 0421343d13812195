package textgame

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Characters the engine prints for a square.
const (
	chBlank     = ' '
	chLighted   = '.'
	chWall      = 'w'
	chLightbulb = '*'
	chMark      = '-'
)

var (
	rowLine     = regexp.MustCompile(`^\s*(\d+) \|(.*)\|$`)
	errorLine   = regexp.MustCompile(`^Error at (?:light bulb|black wall) \((\d+),(\d+)\)$`)
	illegalLine = regexp.MustCompile(`^Error: illegal move on square \((-?\d+),(-?\d+)\)!$`)
)

const (
	promptLine = "> ? [h for help]"
	winLine    = "Congratulation, you win :-)"
)

type pos struct{ row, col int }

// Snapshot is the board as last printed by the engine. It is immutable; each
// command response produces a new one.
type Snapshot struct {
	cells  [][]byte
	errors map[pos]bool
	over   bool
}

// parseSnapshot extracts the printed board and its error list from one
// response.
func parseSnapshot(lines []string) (*Snapshot, error) {
	s := &Snapshot{errors: make(map[pos]bool)}
	for _, line := range lines {
		if m := rowLine.FindStringSubmatch(line); m != nil {
			idx, _ := strconv.Atoi(m[1])
			if idx != len(s.cells) {
				return nil, fmt.Errorf("board row %d out of order (expected %d)", idx, len(s.cells))
			}
			if len(s.cells) > 0 && len(m[2]) != len(s.cells[0]) {
				return nil, fmt.Errorf("board row %d has %d columns, want %d", idx, len(m[2]), len(s.cells[0]))
			}
			s.cells = append(s.cells, []byte(m[2]))
			continue
		}
		if m := errorLine.FindStringSubmatch(line); m != nil {
			r, _ := strconv.Atoi(m[1])
			c, _ := strconv.Atoi(m[2])
			s.errors[pos{r, c}] = true
			continue
		}
		if strings.HasPrefix(line, winLine) {
			s.over = true
		}
	}
	if len(s.cells) == 0 {
		return nil, fmt.Errorf("no board in engine output")
	}
	return s, nil
}

func (s *Snapshot) at(row, col int) byte {
	return s.cells[row][col]
}

func (s *Snapshot) Rows() int { return len(s.cells) }
func (s *Snapshot) Cols() int { return len(s.cells[0]) }

func (s *Snapshot) IsBlank(row, col int) bool {
	ch := s.at(row, col)
	return ch == chBlank || ch == chLighted
}

func (s *Snapshot) IsBlack(row, col int) bool {
	ch := s.at(row, col)
	return ch == chWall || (ch >= '0' && ch <= '4')
}

// IsLighted is true for lit blanks and bulbs. The engine prints marks the
// same way lit or not, so a lit mark reads as unlit.
func (s *Snapshot) IsLighted(row, col int) bool {
	ch := s.at(row, col)
	return ch == chLighted || ch == chLightbulb
}

func (s *Snapshot) IsLightbulb(row, col int) bool { return s.at(row, col) == chLightbulb }
func (s *Snapshot) IsMarked(row, col int) bool    { return s.at(row, col) == chMark }
func (s *Snapshot) HasError(row, col int) bool    { return s.errors[pos{row, col}] }
func (s *Snapshot) IsOver() bool                  { return s.over }

func (s *Snapshot) BlackNumber(row, col int) int {
	ch := s.at(row, col)
	if ch >= '0' && ch <= '4' {
		return int(ch - '0')
	}
	return -1
}

// fileFormat renders the board in the engine's load format: a
// "rows cols wrapping" header then one line per row, blanks written as 'b'.
func (s *Snapshot) fileFormat(wrapping bool) string {
	w := 0
	if wrapping {
		w = 1
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d %d %d\n", s.Rows(), s.Cols(), w)
	for _, row := range s.cells {
		for _, ch := range row {
			if ch == chBlank || ch == chLighted {
				ch = 'b'
			}
			sb.WriteByte(ch)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
