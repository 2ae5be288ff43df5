package lang

import (
	"github.com/sahilm/fuzzy"
)

// maxSimilar bounds the number of names returned by [Similar].
const maxSimilar = 3

// Similar returns up to three candidates that fuzzily match name, best match
// first.
func Similar(name string, candidates []string) []string {
	if name == "" || len(candidates) == 0 {
		return nil
	}

	matches := fuzzy.Find(name, candidates)

	similar := make([]string, 0, min(len(matches), maxSimilar))
	for _, m := range matches {
		if m.Str == name {
			continue
		}

		similar = append(similar, m.Str)

		if len(similar) == maxSimilar {
			break
		}
	}

	return similar
}
