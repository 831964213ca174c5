// SPDX-License-Identifier: MIT
// Package: matrix
//
// parse.go - plain-text matrix literals.
//
// Format: one row per line, elements separated by whitespace (commas and
// surrounding brackets are tolerated so String() output round-trips).
// Blank lines and lines starting with '#' are skipped.

package matrix

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Parse reads a matrix literal.
// Errors: ErrParse (bad token), ErrRaggedRows, ErrInvalidDimensions (empty).
func Parse(text string) (*Dense, error) {
	var rows [][]int32
	sc := bufio.NewScanner(strings.NewReader(text))
	line := 0
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		s = strings.NewReplacer("[", " ", "]", " ", ",", " ").Replace(s)
		fields := strings.Fields(s)
		if len(fields) == 0 {
			continue
		}
		row := make([]int32, len(fields))
		for j, f := range fields {
			v, err := strconv.ParseInt(f, 10, 32)
			if err != nil {
				return nil, errors.Wrapf(ErrParse, "line %d, column %d: %q", line, j+1, f)
			}
			row[j] = int32(v)
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.CombineErrors(errors.Wrap(ErrParse, "scan"), err)
	}

	m, err := NewDenseFrom(rows)
	if err != nil {
		return nil, opErrorf("Parse", err)
	}

	return m, nil
}

// Format renders m as whitespace-separated rows, the inverse of Parse.
func Format(m Matrix) string {
	if ValidateNotNil(m) != nil {
		return ""
	}
	var sb strings.Builder
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			v, _ := m.At(i, j) // indices are in range by construction
			if j > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.FormatInt(int64(v), 10))
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
