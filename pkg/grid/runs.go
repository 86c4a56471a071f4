package grid

// Run is a maximal sequence of digits within one row. End is exclusive.
type Run struct {
	Row   int
	Start int
	End   int
	Value int
}

// Len returns the number of digits in the run
func (r Run) Len() int {
	return r.End - r.Start
}

// Scanner yields the digit runs of one line from left to right.
// A Scanner is single use. Values are not overflow checked: runs longer
// than MaxRunDigits wrap, which New rejects for every row of a Grid.
type Scanner struct {
	row  int
	line []byte
	pos  int
}

// NewScanner returns a scanner over line, tagging runs with row
func NewScanner(row int, line []byte) *Scanner {
	return &Scanner{row: row, line: line}
}

// Next returns the next run, or false once the line is exhausted
func (s *Scanner) Next() (Run, bool) {
	for s.pos < len(s.line) && !IsDigit(s.line[s.pos]) {
		s.pos++
	}
	if s.pos >= len(s.line) {
		return Run{}, false
	}

	run := Run{Row: s.row, Start: s.pos}
	for s.pos < len(s.line) && IsDigit(s.line[s.pos]) {
		run.Value = run.Value*10 + int(s.line[s.pos]-'0')
		s.pos++
	}
	run.End = s.pos
	return run, true
}

// Runs collects every run of a line
func Runs(row int, line []byte) []Run {
	var runs []Run
	sc := NewScanner(row, line)
	for {
		r, ok := sc.Next()
		if !ok {
			return runs
		}
		runs = append(runs, r)
	}
}

// RunAt extends the digit at line[col] left and right to the full run.
// It returns false when col is out of range or not a digit. The run never
// leaves line, so numbers cannot wrap across rows. Like Scanner, it assumes
// runs of at most MaxRunDigits.
func RunAt(line []byte, col int) (Run, bool) {
	if col < 0 || col >= len(line) || !IsDigit(line[col]) {
		return Run{}, false
	}

	start := col
	for start > 0 && IsDigit(line[start-1]) {
		start--
	}
	end := col + 1
	for end < len(line) && IsDigit(line[end]) {
		end++
	}

	run := Run{Start: start, End: end}
	for _, c := range line[start:end] {
		run.Value = run.Value*10 + int(c-'0')
	}
	return run, true
}
