// Package nodeset expands host-range expressions into host names.
//
// An expression is a comma-separated list of terms. Each term is a literal
// host name that may contain bracketed numeric ranges:
//
//	node[1-3]          node1 node2 node3
//	node[01-03]        node01 node02 node03
//	rack[1-2]-n[1,4]   rack1-n1 rack1-n4 rack2-n1 rack2-n4
//	web1,db[1-2]       web1 db1 db2
//
// Commas inside brackets separate range items, not terms. Duplicate names are
// dropped, keeping the first occurrence.
package nodeset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rileyhilliard/fleettop/internal/errors"
)

// MaxHosts caps how many names one expression may expand to.
const MaxHosts = 10000

// Expand returns the host names described by expr, in order.
func Expand(expr string) ([]string, error) {
	terms, err := splitTerms(expr)
	if err != nil {
		return nil, err
	}

	var hosts []string
	seen := make(map[string]bool)

	for _, term := range terms {
		names, err := expandTerm(term)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			if seen[name] {
				continue
			}
			seen[name] = true
			hosts = append(hosts, name)
			if len(hosts) > MaxHosts {
				return nil, errors.New(errors.ErrRange,
					fmt.Sprintf("'%s' expands to more than %d hosts", expr, MaxHosts),
					"Narrow the ranges or split the fleet across several runs.")
			}
		}
	}

	if len(hosts) == 0 {
		return nil, errors.New(errors.ErrRange,
			"No hosts given",
			"Pass a host range, e.g. fleettop 'node[1-4]'")
	}

	return hosts, nil
}

// splitTerms splits expr on commas that are not inside brackets.
func splitTerms(expr string) ([]string, error) {
	var terms []string
	depth := 0
	start := 0

	flush := func(end int) {
		term := strings.TrimSpace(expr[start:end])
		if term != "" {
			terms = append(terms, term)
		}
	}

	for i, r := range expr {
		switch r {
		case '[':
			depth++
			if depth > 1 {
				return nil, rangeError(expr, "nested '['")
			}
		case ']':
			depth--
			if depth < 0 {
				return nil, rangeError(expr, "']' without a matching '['")
			}
		case ',':
			if depth == 0 {
				flush(i)
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, rangeError(expr, "'[' is never closed")
	}
	flush(len(expr))

	return terms, nil
}

// expandTerm expands every bracket group in term as a cartesian product,
// leftmost group varying slowest.
func expandTerm(term string) ([]string, error) {
	open := strings.IndexByte(term, '[')
	if open == -1 {
		if strings.ContainsAny(term, " \t") {
			return nil, rangeError(term, "host names can't contain spaces")
		}
		return []string{term}, nil
	}
	closeIdx := strings.IndexByte(term[open:], ']') + open

	prefix := term[:open]
	values, err := expandGroup(term, term[open+1:closeIdx])
	if err != nil {
		return nil, err
	}
	rest, err := expandTerm(term[closeIdx+1:])
	if err != nil {
		return nil, err
	}
	if len(values)*len(rest) > MaxHosts {
		return nil, errors.New(errors.ErrRange,
			fmt.Sprintf("'%s' expands to more than %d hosts", term, MaxHosts),
			"Narrow the ranges or split the fleet across several runs.")
	}

	names := make([]string, 0, len(values)*len(rest))
	for _, v := range values {
		for _, suffix := range rest {
			names = append(names, prefix+v+suffix)
		}
	}
	return names, nil
}

// expandGroup expands the inside of one bracket pair, e.g. "01-03,7".
func expandGroup(term, group string) ([]string, error) {
	if strings.TrimSpace(group) == "" {
		return nil, rangeError(term, "empty '[]'")
	}

	var values []string
	for _, item := range strings.Split(group, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			return nil, rangeError(term, "empty item inside '[]'")
		}

		lo, hi, isRange := strings.Cut(item, "-")
		if !isRange {
			if !isDigits(item) {
				return nil, rangeError(term, fmt.Sprintf("'%s' is not a number", item))
			}
			values = append(values, item)
			continue
		}

		if !isDigits(lo) || !isDigits(hi) {
			return nil, rangeError(term, fmt.Sprintf("'%s' is not a numeric range", item))
		}
		from, err := strconv.Atoi(lo)
		if err != nil {
			return nil, rangeError(term, fmt.Sprintf("'%s' is out of range", lo))
		}
		to, err := strconv.Atoi(hi)
		if err != nil {
			return nil, rangeError(term, fmt.Sprintf("'%s' is out of range", hi))
		}
		if from > to {
			return nil, rangeError(term, fmt.Sprintf("range '%s' runs backwards", item))
		}
		if to-from >= MaxHosts {
			return nil, errors.New(errors.ErrRange,
				fmt.Sprintf("'%s' expands to more than %d hosts", term, MaxHosts),
				"Narrow the ranges or split the fleet across several runs.")
		}

		// A leading zero fixes the width for the whole range.
		width := 0
		if len(lo) > 1 && lo[0] == '0' {
			width = len(lo)
		}
		for n := from; n <= to; n++ {
			values = append(values, fmt.Sprintf("%0*d", width, n))
		}
	}
	return values, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func rangeError(expr, why string) *errors.Error {
	return errors.New(errors.ErrRange,
		fmt.Sprintf("Can't parse host range '%s': %s", expr, why),
		"Use a comma-separated list like 'node[1-4],gpu[01-02]'")
}
