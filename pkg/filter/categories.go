package filter

import (
	"sort"
	"strings"

	"github.com/milgraph/milgraph/pkg/entity"
	"github.com/milgraph/milgraph/pkg/graph"
)

// Categories maps equipment category names to the free-text keywords used
// for fuzzy classification. The table is part of the library contract;
// external tooling reads it to populate filter pickers.
var Categories = map[string][]string{
	"aircraft_unmanned": {"unmanned aircraft", "aircraft", "drone", "uav", "unmanned aerial vehicle"},
	"communication_electronics": {"communication equipment", "electronic system", "computer system",
		"sensor", "sensor system", "equipment", "electronic_system",
		"radar", "radio", "electronics"},
	"weapons_defense": {"artillery", "missile", "defense system", "weapon", "ammunition",
		"gun", "cannon", "launcher", "rocket", "bomb"},
	"vehicles": {"armored vehicle", "vehicle", "car", "motorcycle", "truck", "bus", "van",
		"bicycle", "tank", "apc", "armored"},
	"naval_assets": {"naval vessel", "vessel", "boat", "watercraft", "ship", "submarine",
		"destroyer", "frigate", "carrier"},
	"transportation": {"train", "railway", "locomotive", "transport"},
	"administrative": {"organization", "other", "command", "headquarters", "base"},
	"geographic":     {"country", "area", "coordinates", "location", "region", "territory"},
}

// CategoryNames returns the category names, sorted.
func CategoryNames() []string {
	names := make([]string, 0, len(Categories))
	for name := range Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CategoryInfo describes one category for UI display.
type CategoryInfo struct {
	Label       string   `json:"label"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
}

// CategoryDescriptions returns display metadata for every category.
func CategoryDescriptions() map[string]CategoryInfo {
	return map[string]CategoryInfo{
		"aircraft_unmanned": {
			Label:       "Aircraft & Unmanned Systems",
			Description: "Aircraft, drones, UAVs, and unmanned aerial vehicles",
			Keywords:    Categories["aircraft_unmanned"],
		},
		"communication_electronics": {
			Label:       "Communication & Electronics",
			Description: "Communication equipment, sensors, electronic systems",
			Keywords:    Categories["communication_electronics"],
		},
		"weapons_defense": {
			Label:       "Weapons & Defense",
			Description: "Artillery, missiles, weapons, and defense systems",
			Keywords:    Categories["weapons_defense"],
		},
		"vehicles": {
			Label:       "Vehicles",
			Description: "All types of vehicles including armored vehicles",
			Keywords:    Categories["vehicles"],
		},
		"naval_assets": {
			Label:       "Naval Assets",
			Description: "Ships, vessels, boats, and naval equipment",
			Keywords:    Categories["naval_assets"],
		},
		"transportation": {
			Label:       "Transportation",
			Description: "Trains, railways, and transport infrastructure",
			Keywords:    Categories["transportation"],
		},
		"administrative": {
			Label:       "Administrative",
			Description: "Organizations, commands, and administrative entities",
			Keywords:    Categories["administrative"],
		},
		"geographic": {
			Label:       "Geographic",
			Description: "Countries, areas, coordinates, and locations",
			Keywords:    Categories["geographic"],
		},
	}
}

// byEquipmentCategory matches nodes against the keyword union of one or more
// requested categories. Matching walks a fixed priority order per node and
// stops at the first hit: entity type, then the type-specific attribute the
// requested categories unlock, then label, names, and descriptive fields.
func byEquipmentCategory(g *graph.Graph, value any) Set {
	matches := make(Set)

	var requested []string
	switch v := value.(type) {
	case string:
		requested = []string{v}
	case []string:
		requested = v
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				requested = append(requested, s)
			}
		}
	default:
		return matches
	}

	keywords := make(map[string]struct{})
	for _, category := range requested {
		for _, kw := range Categories[category] {
			keywords[strings.ToLower(kw)] = struct{}{}
		}
	}
	if len(keywords) == 0 {
		return matches
	}

	wantsVehicles := containsAny(requested, "vehicle", "vehicles")
	wantsAdministrative := containsAny(requested, "administrative")
	wantsGeographic := containsAny(requested, "geographic")

	anyKeywordIn := func(s string) bool {
		s = strings.ToLower(s)
		if s == "" {
			return false
		}
		for kw := range keywords {
			if strings.Contains(s, kw) {
				return true
			}
		}
		return false
	}

	for _, n := range g.Nodes() {
		switch {
		case anyKeywordIn(string(n.Type)):
		case wantsVehicles && anyKeywordIn(n.VehicleType):
		case wantsAdministrative && anyKeywordIn(n.OrganizationType):
		case wantsGeographic && anyKeywordIn(n.AreaType):
		case anyKeywordIn(n.Label):
		case anyNameMatches(n.Data, anyKeywordIn):
		case anyFieldMatches(n.Data, anyKeywordIn, "description", "title", "model", "make", "classification"):
		default:
			continue
		}
		matches.Add(n.ID)
	}
	return matches
}

func containsAny(values []string, targets ...string) bool {
	for _, v := range values {
		for _, t := range targets {
			if v == t {
				return true
			}
		}
	}
	return false
}

func anyNameMatches(record entity.Record, match func(string) bool) bool {
	for _, name := range entity.NameValues(record) {
		if match(name) {
			return true
		}
	}
	return false
}

func anyFieldMatches(record entity.Record, match func(string) bool, fields ...string) bool {
	for _, field := range fields {
		if match(entity.String(record, field)) {
			return true
		}
	}
	return false
}
