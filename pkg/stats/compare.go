package stats

import (
	"sort"
	"strings"

	"github.com/milgraph/milgraph/pkg/entity"
	"github.com/milgraph/milgraph/pkg/graph"
)

// DefaultComparisonCountries is the country list used by the comprehensive
// report.
var DefaultComparisonCountries = []string{
	"UK", "USA", "Russia", "China", "Iran", "Poland", "Sweden", "Finland",
}

// Comparison is the cross-country analysis output.
type Comparison struct {
	Countries          map[string]*CountryProfile `json:"countries"`
	Metrics            ComparisonMetrics          `json:"comparison_metrics"`
	RelativeStrengths  map[string]Strengths       `json:"relative_strengths"`
	TechnologyTimeline map[string]map[int]int     `json:"technology_timeline"`
	AssetTypes         map[string]map[string]int  `json:"asset_types"`
}

// CountryProfile aggregates every entity that belongs to a country.
type CountryProfile struct {
	TotalAssets       int            `json:"total_assets"`
	Vehicles          int            `json:"vehicles"`
	Organizations     int            `json:"organizations"`
	Areas             int            `json:"areas"`
	People            int            `json:"people"`
	VehicleTypes      map[string]int `json:"vehicle_types"`
	OrganizationTypes map[string]int `json:"organization_types"`
	Manufacturers     map[string]int `json:"manufacturers"`
	Timeline          map[int]int    `json:"timeline"`
}

// ComparisonMetrics are the head-to-head numbers.
type ComparisonMetrics struct {
	TotalAssetsRanking  []CountedValue `json:"total_assets_ranking"`
	VehicleCounts       map[string]int `json:"vehicle_counts"`
	OrganizationCounts  map[string]int `json:"organization_counts"`
	TechnologyDiversity map[string]int `json:"technology_diversity"`
}

// CountedValue pairs a value with its count, for rankings and top-N lists.
type CountedValue struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Strengths summarizes what a country's inventory concentrates on.
type Strengths struct {
	DominantVehicleTypes []CountedValue `json:"dominant_vehicle_types"`
	MajorManufacturers   []CountedValue `json:"major_manufacturers"`
	OrganizationFocus    []CountedValue `json:"organization_focus"`
	TechnologyEra        string         `json:"technology_era,omitempty"`
}

// BelongsToCountry reports whether a node belongs to the country token:
// a case-insensitive substring of its owner, country, or nationality, or of
// the label for country nodes. Deliberately looser than exact match, so that
// "UK Army" matches token "uk".
func BelongsToCountry(n *graph.Node, country string) bool {
	token := strings.ToLower(country)
	if strings.Contains(strings.ToLower(n.Owner), token) && n.Owner != "" {
		return true
	}
	if strings.Contains(strings.ToLower(n.Country), token) && n.Country != "" {
		return true
	}
	if strings.Contains(strings.ToLower(n.Nationality), token) && n.Nationality != "" {
		return true
	}
	if n.Type == entity.TypeCountry && n.Label != "" &&
		strings.Contains(strings.ToLower(n.Label), token) {
		return true
	}
	return false
}

// CompareCountries builds the cross-country comparison for the requested
// country tokens.
func (s *Generator) CompareCountries(g *graph.Graph, countries []string) *Comparison {
	s.logger.Info("comparing countries", "countries", countries)

	comparison := &Comparison{
		Countries:          make(map[string]*CountryProfile, len(countries)),
		RelativeStrengths:  make(map[string]Strengths, len(countries)),
		TechnologyTimeline: make(map[string]map[int]int, len(countries)),
		AssetTypes:         make(map[string]map[string]int, len(countries)),
	}

	for _, country := range countries {
		comparison.Countries[country] = profileCountry(g, country)
		comparison.TechnologyTimeline[country] = technologyTimeline(g, country)
		comparison.AssetTypes[country] = assetTypes(g, country)
	}

	comparison.Metrics = comparisonMetrics(comparison.Countries)
	for country, profile := range comparison.Countries {
		comparison.RelativeStrengths[country] = relativeStrengths(profile)
	}
	return comparison
}

func profileCountry(g *graph.Graph, country string) *CountryProfile {
	profile := &CountryProfile{
		VehicleTypes:      make(map[string]int),
		OrganizationTypes: make(map[string]int),
		Manufacturers:     make(map[string]int),
		Timeline:          make(map[int]int),
	}

	for _, n := range g.Nodes() {
		if !BelongsToCountry(n, country) {
			continue
		}
		profile.TotalAssets++

		switch n.Type {
		case entity.TypeVehicle:
			profile.Vehicles++
			profile.VehicleTypes[orUnknown(n.VehicleType)]++
			profile.Manufacturers[orUnknown(n.Manufacturer)]++
		case entity.TypeOrganization:
			profile.Organizations++
			profile.OrganizationTypes[orUnknown(n.OrganizationType)]++
		case entity.TypeArea:
			profile.Areas++
		case entity.TypePerson:
			profile.People++
		}

		if n.Year != 0 {
			profile.Timeline[n.Year]++
		}
	}
	return profile
}

// technologyTimeline restricts the per-year counts to vehicle and
// organization nodes matched on owner or country only.
func technologyTimeline(g *graph.Graph, country string) map[int]int {
	token := strings.ToLower(country)
	timeline := make(map[int]int)
	for _, n := range g.Nodes() {
		if n.Year == 0 {
			continue
		}
		if n.Type != entity.TypeVehicle && n.Type != entity.TypeOrganization {
			continue
		}
		if ownerOrCountryMatches(n, token) {
			timeline[n.Year]++
		}
	}
	return timeline
}

func assetTypes(g *graph.Graph, country string) map[string]int {
	token := strings.ToLower(country)
	types := make(map[string]int)
	for _, n := range g.Nodes() {
		if ownerOrCountryMatches(n, token) {
			types[string(n.Type)]++
		}
	}
	return types
}

func ownerOrCountryMatches(n *graph.Node, token string) bool {
	if n.Owner != "" && strings.Contains(strings.ToLower(n.Owner), token) {
		return true
	}
	if n.Country != "" && strings.Contains(strings.ToLower(n.Country), token) {
		return true
	}
	return false
}

func comparisonMetrics(profiles map[string]*CountryProfile) ComparisonMetrics {
	metrics := ComparisonMetrics{
		VehicleCounts:       make(map[string]int, len(profiles)),
		OrganizationCounts:  make(map[string]int, len(profiles)),
		TechnologyDiversity: make(map[string]int, len(profiles)),
	}
	for country, profile := range profiles {
		metrics.TotalAssetsRanking = append(metrics.TotalAssetsRanking,
			CountedValue{Value: country, Count: profile.TotalAssets})
		metrics.VehicleCounts[country] = profile.Vehicles
		metrics.OrganizationCounts[country] = profile.Organizations
		metrics.TechnologyDiversity[country] = len(profile.Manufacturers)
	}
	sort.Slice(metrics.TotalAssetsRanking, func(i, j int) bool {
		a, b := metrics.TotalAssetsRanking[i], metrics.TotalAssetsRanking[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Value < b.Value
	})
	return metrics
}

func relativeStrengths(profile *CountryProfile) Strengths {
	strengths := Strengths{
		DominantVehicleTypes: topCounted(profile.VehicleTypes, 3),
		MajorManufacturers:   topCounted(profile.Manufacturers, 3),
		OrganizationFocus:    topCounted(profile.OrganizationTypes, 3),
	}

	if len(profile.Timeline) > 0 {
		byDecade := make(map[int]int)
		for year, count := range profile.Timeline {
			byDecade[(year/10)*10] += count
		}
		bestDecade, bestCount := 0, -1
		for decade, count := range byDecade {
			if count > bestCount || (count == bestCount && decade < bestDecade) {
				bestDecade, bestCount = decade, count
			}
		}
		strengths.TechnologyEra = decadeLabel(bestDecade)
	}
	return strengths
}

func topCounted(counts map[string]int, n int) []CountedValue {
	ranked := make([]CountedValue, 0, len(counts))
	for value, count := range counts {
		ranked = append(ranked, CountedValue{Value: value, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Value < ranked[j].Value
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
