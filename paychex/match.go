package paychex

import (
	"sort"
	"strings"
)

// NormalizeName folds a display name to a comparable form: lowercase,
// collapsed whitespace, no periods, and "Last, First M" rewritten to
// "first m last".
func NormalizeName(raw string) string {
	name := strings.TrimSpace(raw)
	name = strings.ReplaceAll(name, ".", "")
	name = strings.ToLower(name)

	if comma := strings.Index(name, ","); comma >= 0 {
		last := strings.TrimSpace(name[:comma])
		rest := strings.TrimSpace(name[comma+1:])
		if last != "" && rest != "" {
			name = rest + " " + last
		}
	}

	return strings.Join(strings.Fields(name), " ")
}

// MatchResult pairs timesheet employees with payroll rows. Keys of
// Matched are the timesheet names.
type MatchResult struct {
	Matched             map[string]Employee
	UnmatchedCalculated []string
	UnmatchedPaychex    []string
}

// Match links each calculated (timesheet) employee to a payroll row by
// normalized name. Three passes: exact normalized match, roster alias,
// then first+last token match for middle-initial mismatches. A payroll
// row is consumed by at most one employee.
func Match(calculated []string, data []Employee, aliases map[string]string) MatchResult {
	byNormalized := make(map[string]int, len(data))
	for i, employee := range data {
		byNormalized[employee.NormalizedName] = i
	}

	used := make(map[int]bool, len(data))
	result := MatchResult{Matched: make(map[string]Employee, len(calculated))}

	sorted := append([]string(nil), calculated...)
	sort.Strings(sorted)

	for _, name := range sorted {
		index, ok := findMatch(name, data, byNormalized, aliases, used)
		if !ok {
			result.UnmatchedCalculated = append(result.UnmatchedCalculated, name)
			continue
		}
		used[index] = true
		result.Matched[name] = data[index]
	}

	for i, employee := range data {
		if !used[i] {
			result.UnmatchedPaychex = append(result.UnmatchedPaychex, employee.RawName)
		}
	}
	sort.Strings(result.UnmatchedPaychex)

	return result
}

func findMatch(name string, data []Employee, byNormalized map[string]int, aliases map[string]string, used map[int]bool) (int, bool) {
	normalized := NormalizeName(name)
	if index, ok := byNormalized[normalized]; ok && !used[index] {
		return index, true
	}

	if alias, ok := aliases[name]; ok {
		if index, ok := byNormalized[NormalizeName(alias)]; ok && !used[index] {
			return index, true
		}
	}

	// Fall back to first and last token so "John A Smith" still finds
	// "Smith, John".
	tokens := strings.Fields(normalized)
	if len(tokens) < 2 {
		return 0, false
	}
	first, last := tokens[0], tokens[len(tokens)-1]

	for i, employee := range data {
		if used[i] {
			continue
		}
		theirs := strings.Fields(employee.NormalizedName)
		if len(theirs) < 2 {
			continue
		}
		if theirs[0] == first && theirs[len(theirs)-1] == last {
			return i, true
		}
	}

	return 0, false
}
