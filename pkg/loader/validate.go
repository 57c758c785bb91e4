package loader

import (
	"fmt"
	"sort"

	"github.com/milgraph/milgraph/pkg/entity"
)

// Validation is the outcome of a structural check over loaded collections.
type Validation struct {
	Valid       bool           `json:"is_valid"`
	Issues      []string       `json:"issues"`
	EntityCount int            `json:"entity_count"`
	Collections map[string]int `json:"collections"`
}

// Validate checks that collections have the shape the graph builder expects:
// every record is an object with a string id, and duplicate ids within a
// collection are flagged. Issues are collected rather than failing fast so
// one pass reports everything wrong with a file.
func Validate(collections entity.Collections) Validation {
	v := Validation{
		Valid:       true,
		Issues:      []string{},
		Collections: make(map[string]int, len(collections)),
	}

	if len(collections) == 0 {
		v.Valid = false
		v.Issues = append(v.Issues, "database holds no collections")
		return v
	}

	for _, name := range sortedCollectionNames(collections) {
		records := collections[name]
		v.Collections[name] = len(records)
		v.EntityCount += len(records)

		seen := make(map[string]struct{}, len(records))
		for i, record := range records {
			if record == nil {
				v.Valid = false
				v.Issues = append(v.Issues, fmt.Sprintf("%s[%d]: record is null", name, i))
				continue
			}
			id := entity.ID(record)
			if id == "" {
				v.Valid = false
				v.Issues = append(v.Issues, fmt.Sprintf("%s[%d]: missing or non-string id", name, i))
				continue
			}
			if _, dup := seen[id]; dup {
				v.Valid = false
				v.Issues = append(v.Issues, fmt.Sprintf("%s[%d]: duplicate id %q", name, i, id))
			}
			seen[id] = struct{}{}
		}
	}
	return v
}

func sortedCollectionNames(collections entity.Collections) []string {
	names := make([]string, 0, len(collections))
	for name := range collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
