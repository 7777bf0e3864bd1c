package solver

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseCNF reads a DIMACS CNF problem and feeds its clauses to the solver.
// The header is optional: clauses may start right away. Comment lines start
// with 'c'.
func ParseCNF(r io.Reader, s *Solver) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	line := 0
	headerSeen := false
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "c") {
			continue
		}
		if strings.HasPrefix(text, "p") {
			if headerSeen {
				return errors.Errorf("line %d: duplicate problem header", line)
			}
			headerSeen = true
			fields := strings.Fields(text)
			if len(fields) != 4 || fields[1] != "cnf" {
				return errors.Errorf("line %d: invalid problem header %q", line, text)
			}
			for _, field := range fields[2:] {
				if _, err := strconv.Atoi(field); err != nil {
					return errors.Wrapf(err, "line %d: invalid problem header %q", line, text)
				}
			}
			continue
		}
		for _, field := range strings.Fields(text) {
			val, err := strconv.Atoi(field)
			if err != nil {
				return errors.Wrapf(err, "line %d: invalid literal %q", line, field)
			}
			s.Add(val)
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "could not read problem")
	}
	if len(s.original) > 0 {
		// Tolerate a missing final 0.
		s.Add(0)
	}
	return nil
}

// ParseSlice feeds a slice of clauses to the solver. The argument is
// supposed to be a well-formed CNF.
func ParseSlice(cnf [][]int, s *Solver) {
	for _, clause := range cnf {
		s.AddClause(clause...)
	}
}
