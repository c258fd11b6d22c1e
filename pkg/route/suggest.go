package route

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// SuggestRoutes returns canonical route names whose edit distance from input
// (compared case-insensitively against both canonical names and aliases) is
// within maxDistance, nearest first, capped at maxSuggestions.
func SuggestRoutes(input string, maxDistance, maxSuggestions int) []string {
	needle := strings.ToLower(strings.TrimSpace(input))
	if needle == "" {
		return nil
	}

	type candidate struct {
		name     string
		distance int
	}

	best := make(map[string]int)
	consider := func(name, against string) {
		d := levenshtein.ComputeDistance(needle, strings.ToLower(against))
		if d > maxDistance {
			return
		}
		if prev, ok := best[name]; !ok || d < prev {
			best[name] = d
		}
	}

	for name := range canonical {
		consider(name, name)
	}
	for alias, name := range aliases {
		consider(name, alias)
	}

	candidates := make([]candidate, 0, len(best))
	for name, d := range best {
		candidates = append(candidates, candidate{name, d})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].distance != candidates[j].distance {
			return candidates[i].distance < candidates[j].distance
		}
		return candidates[i].name < candidates[j].name
	})

	if len(candidates) > maxSuggestions {
		candidates = candidates[:maxSuggestions]
	}
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.name
	}
	return out
}
