package match

import (
	"fmt"
	"slices"
	"strings"
)

// checkErrors pairs expectations with raised errors. The pairing must be
// a perfect bijection: every expectation matched, every error claimed,
// order-independent.
//
// The algorithm is greedy, expected-first: each expectation in declared
// order claims the first remaining error it matches. This is a deliberate
// limitation; an earlier, looser expectation can claim an error a later,
// more specific one needed. On failure the rest of the result table is
// filled in to build the diagnostic, and a backtracking reachability
// check may note that a non-greedy assignment would have worked.
func (g *Group) checkErrors(actual []error) bool {
	table := newResultTable(len(g.expected), len(actual))

	remaining := make([]int, 0, len(actual))
	for i := range actual {
		remaining = append(remaining, i)
	}
	var failedExpected []int
	matched := make(map[int]int) // expected index -> claimed actual index

	var lastRes string
	for iExp, exp := range g.expected {
		found := false
		for _, iAct := range remaining {
			res := checkExpected(exp, actual[iAct])
			lastRes = res
			table.set(iExp, iAct, res)
			if res == "" {
				remaining = removeValue(remaining, iAct)
				matched[iExp] = iAct
				found = true
				break
			}
		}
		if !found {
			failedExpected = append(failedExpected, iExp)
		}
	}

	if len(remaining) == 0 && len(failedExpected) == 0 {
		return true
	}

	// One expectation against one error simplifies to the pairwise reason.
	if len(actual) == 1 && len(g.expected) == 1 {
		g.failReason = lastRes
		return false
	}

	// The assertion is already failing, so the exhaustive table fill is
	// affordable and makes the diagnostics below possible.
	for iExp, exp := range g.expected {
		for iAct := range actual {
			if table.has(iExp, iAct) {
				continue
			}
			table.set(iExp, iAct, checkExpected(exp, actual[iAct]))
		}
	}

	successful := ""
	if len(matched) > 0 {
		plural := ""
		if len(matched) > 1 {
			plural = "s"
		}
		successful = fmt.Sprintf("%d matched error%s. ", len(matched), plural)
	}

	// Every expectation found a match, and the leftover errors match nothing.
	if len(failedExpected) == 0 && table.noMatchForActual(remaining) {
		g.failReason = successful + "Unexpected error(s): " + reprErrors(pick(actual, remaining))
		return false
	}
	// Every raised error was claimed, and the leftover expectations match nothing.
	if len(remaining) == 0 && table.noMatchForExpected(failedExpected) {
		g.failReason = fmt.Sprintf("%sToo few errors raised, found no match for: [%s]",
			successful, g.reprExpectedList(failedExpected))
		return false
	}
	// Exactly one leftover on each side with no cross-matches anywhere:
	// print just that pair's failure.
	if len(remaining) == 1 && len(failedExpected) == 1 &&
		table.noMatchForActual(remaining) && table.noMatchForExpected(failedExpected) {
		g.failReason = successful + table.get(failedExpected[0], remaining[0])
		return false
	}

	// General case: structured report.
	var b strings.Builder
	if len(matched) > 0 {
		b.WriteString("\n" + successful)
	}
	const indent1 = "  "
	const indent2 = "    "

	if len(remaining) == 0 {
		b.WriteString("\nToo few errors raised!")
	} else if len(failedExpected) == 0 {
		b.WriteString("\nUnexpected error(s)!")
	}

	if len(failedExpected) > 0 {
		b.WriteString("\nThe following expected errors did not find a match:")
		claimedBy := make(map[int]int) // actual index -> expected index
		for iExp, iAct := range matched {
			claimedBy[iAct] = iExp
		}
		for _, iFailed := range failedExpected {
			b.WriteString("\n" + indent1 + reprExpected(g.expected[iFailed]))
			for iAct := range actual {
				if table.get(iFailed, iAct) == "" {
					b.WriteString(fmt.Sprintf("\n%sIt matches %s which was paired with %s",
						indent2, reprError(actual[iAct]), reprExpected(g.expected[claimedBy[iAct]])))
				}
			}
		}
	}

	if len(remaining) > 0 {
		b.WriteString("\nThe following raised errors did not find a match:")
		for _, iAct := range remaining {
			b.WriteString("\n" + indent1 + reprError(actual[iAct]) + ":")
			for iExp := range g.expected {
				res := table.get(iExp, iAct)
				if slices.Contains(failedExpected, iExp) {
					if !strings.HasPrefix(res, "\n") {
						b.WriteString("\n")
					}
					b.WriteString(indent(res, indent2))
				}
				if res == "" {
					b.WriteString(fmt.Sprintf("\n%sIt matches %s which was paired with %s",
						indent2, reprExpected(g.expected[iExp]), reprError(actual[matched[iExp]])))
				}
			}
		}
	}

	if len(g.expected) == len(actual) && possibleMatch(table) {
		b.WriteString("\nThere exists a possible match when attempting an exhaustive check," +
			" but the pairing algorithm is greedy. Make the expected errors more specific" +
			" (e.g. with a Matcher) so the greedy pairing can find it.")
	}
	g.failReason = b.String()
	return false
}

func (g *Group) reprExpectedList(indices []int) string {
	parts := make([]string, 0, len(indices))
	for _, i := range indices {
		parts = append(parts, reprExpected(g.expected[i]))
	}
	return strings.Join(parts, ", ")
}

// reprError renders a raised error for diagnostics as Type("message").
func reprError(err error) string {
	return fmt.Sprintf("%T(%q)", err, err.Error())
}

func reprErrors(errs []error) string {
	parts := make([]string, 0, len(errs))
	for _, err := range errs {
		parts = append(parts, reprError(err))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func pick(errs []error, indices []int) []error {
	res := make([]error, 0, len(indices))
	for _, i := range indices {
		res = append(res, errs[i])
	}
	return res
}

func removeValue(s []int, v int) []int {
	if i := slices.Index(s, v); i >= 0 {
		return slices.Delete(s, i, i+1)
	}
	return s
}
