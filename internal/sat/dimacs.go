package sat

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseDIMACS reads a CNF instance in simplified DIMACS format: a
// "p cnf <vars> <clauses>" header followed by one clause per line, each a
// sequence of nonzero literals terminated by 0. Blank lines and "c" comment
// lines are skipped. Malformed headers and literals with out-of-range
// magnitude are rejected with ErrInvalidInput.
func ParseDIMACS(r io.Reader) (SAT, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var instance SAT
	var seenHeader bool
	var declared int
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "c") {
			continue
		}

		if !seenHeader {
			fields := strings.Fields(line)
			if len(fields) != 4 || fields[0] != "p" || fields[1] != "cnf" {
				return SAT{}, fmt.Errorf("%w: line %d: expected \"p cnf <vars> <clauses>\", got %q", ErrInvalidInput, lineNo, line)
			}
			variables, err := strconv.ParseUint(fields[2], 10, 64)
			if err != nil {
				return SAT{}, fmt.Errorf("%w: line %d: invalid variable count %q", ErrInvalidInput, lineNo, fields[2])
			}
			declared, err = strconv.Atoi(fields[3])
			if err != nil || declared < 0 {
				return SAT{}, fmt.Errorf("%w: line %d: invalid clause count %q", ErrInvalidInput, lineNo, fields[3])
			}
			instance.Variables = variables
			instance.Clauses = make([][]int64, 0, declared)
			seenHeader = true
			continue
		}

		clause, err := parseClause(line, instance.Variables, lineNo)
		if err != nil {
			return SAT{}, err
		}
		instance.Clauses = append(instance.Clauses, clause)
	}

	if err := scanner.Err(); err != nil {
		return SAT{}, err
	}
	if !seenHeader {
		return SAT{}, fmt.Errorf("%w: missing \"p cnf\" header", ErrInvalidInput)
	}
	if len(instance.Clauses) != declared {
		return SAT{}, fmt.Errorf("%w: header declares %d clauses, found %d", ErrInvalidInput, declared, len(instance.Clauses))
	}

	return instance, nil
}

func parseClause(line string, variables uint64, lineNo int) ([]int64, error) {
	fields := strings.Fields(line)
	clause := make([]int64, 0, len(fields)-1)
	terminated := false

	for i, token := range fields {
		literal, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: non-integer token %q", ErrInvalidInput, lineNo, token)
		}
		if literal == 0 {
			if i != len(fields)-1 {
				return nil, fmt.Errorf("%w: line %d: tokens after terminating 0", ErrInvalidInput, lineNo)
			}
			terminated = true
			break
		}
		if Variable(literal) > variables {
			return nil, fmt.Errorf("%w: line %d: literal %d out of range 1..%d", ErrInvalidInput, lineNo, literal, variables)
		}
		clause = append(clause, literal)
	}

	if !terminated {
		return nil, fmt.Errorf("%w: line %d: clause missing terminating 0", ErrInvalidInput, lineNo)
	}
	return clause, nil
}
