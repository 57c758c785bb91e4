package stats

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/milgraph/milgraph/pkg/entity"
	"github.com/milgraph/milgraph/pkg/graph"
)

// EntityAnalysis holds the per-entity-type breakdowns.
type EntityAnalysis struct {
	Countries     map[string]CountryAssets `json:"countries"`
	Vehicles      VehicleStats             `json:"vehicles"`
	Organizations OrganizationStats        `json:"organizations"`
	People        PeopleStats              `json:"people"`
	Areas         AreaStats                `json:"areas"`
}

// CountryAssets counts what a country node owns, derived from its
// ownership-labeled edges.
type CountryAssets struct {
	TotalAssets int            `json:"total_assets"`
	AssetTypes  map[string]int `json:"asset_types"`
	Connections int            `json:"connections"`
}

// VehicleStats aggregates vehicle nodes.
type VehicleStats struct {
	TotalCount      int            `json:"total_count"`
	ByType          map[string]int `json:"by_type"`
	ByCountry       map[string]int `json:"by_country"`
	ByManufacturer  map[string]int `json:"by_manufacturer"`
	ByDecade        map[string]int `json:"by_decade"`
	AgeDistribution map[string]int `json:"age_distribution"`
}

// OrganizationStats aggregates military organization nodes.
type OrganizationStats struct {
	TotalCount int             `json:"total_count"`
	ByType     map[string]int  `json:"by_type"`
	ByCountry  map[string]int  `json:"by_country"`
	Personnel  *PersonnelStats `json:"personnel_stats,omitempty"`
}

// PersonnelStats summarizes organization personnel strength.
type PersonnelStats struct {
	Total    float64 `json:"total_personnel"`
	Average  float64 `json:"average_personnel"`
	Median   float64 `json:"median_personnel"`
	Largest  float64 `json:"largest_organization"`
	Smallest float64 `json:"smallest_organization"`
}

// PeopleStats aggregates person nodes.
type PeopleStats struct {
	TotalCount    int            `json:"total_count"`
	ByType        map[string]int `json:"by_type"`
	ByNationality map[string]int `json:"by_nationality"`
	BirthDecades  map[string]int `json:"birth_decades"`
}

// AreaStats aggregates area nodes.
type AreaStats struct {
	TotalCount   int            `json:"total_count"`
	ByType       map[string]int `json:"by_type"`
	ByCountry    map[string]int `json:"by_country"`
	ByAdminLevel map[string]int `json:"by_admin_level"`
}

func (s *Generator) analyzeEntities(g *graph.Graph) EntityAnalysis {
	return EntityAnalysis{
		Countries:     analyzeCountries(g),
		Vehicles:      s.analyzeVehicles(g),
		Organizations: analyzeOrganizations(g),
		People:        analyzePeople(g),
		Areas:         analyzeAreas(g),
	}
}

// ownership relationship labels counted as owned assets.
func isOwnership(relationship string) bool {
	return relationship == "owner" || relationship == "owned_by"
}

func analyzeCountries(g *graph.Graph) map[string]CountryAssets {
	countries := make(map[string]CountryAssets)
	for _, n := range g.Nodes() {
		if n.Type != entity.TypeCountry {
			continue
		}
		name := n.Label
		if name == "" {
			name = n.ID
		}

		owned := 0
		assetTypes := make(map[string]int)
		for _, neighbor := range g.Neighbors(n.ID) {
			if e := g.Edge(n.ID, neighbor); e != nil && isOwnership(e.Relationship) {
				owned++
				assetTypes[string(g.Node(neighbor).Type)]++
			}
		}

		countries[name] = CountryAssets{
			TotalAssets: owned,
			AssetTypes:  assetTypes,
			Connections: g.Degree(n.ID),
		}
	}
	return countries
}

func decadeLabel(year int) string {
	return fmt.Sprintf("%ds", (year/10)*10)
}

func (s *Generator) analyzeVehicles(g *graph.Graph) VehicleStats {
	v := VehicleStats{
		ByType:          make(map[string]int),
		ByCountry:       make(map[string]int),
		ByManufacturer:  make(map[string]int),
		ByDecade:        make(map[string]int),
		AgeDistribution: make(map[string]int),
	}
	currentYear := s.opts.now().Year()

	for _, n := range g.Nodes() {
		if n.Type != entity.TypeVehicle {
			continue
		}
		v.TotalCount++
		v.ByType[orUnknown(n.VehicleType)]++
		v.ByCountry[orUnknown(n.Owner)]++
		v.ByManufacturer[orUnknown(n.Manufacturer)]++

		if n.Year != 0 {
			v.ByDecade[decadeLabel(n.Year)]++
			age := currentYear - n.Year
			bucket := (age / 10) * 10
			v.AgeDistribution[fmt.Sprintf("%d-%d years", bucket, bucket+9)]++
		}
	}
	return v
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

func analyzeOrganizations(g *graph.Graph) OrganizationStats {
	o := OrganizationStats{
		ByType:    make(map[string]int),
		ByCountry: make(map[string]int),
	}
	var personnel []float64

	for _, n := range g.Nodes() {
		if n.Type != entity.TypeOrganization {
			continue
		}
		o.TotalCount++
		o.ByType[orUnknown(n.OrganizationType)]++
		o.ByCountry[orUnknown(n.Country)]++
		if n.PersonnelStrength > 0 {
			personnel = append(personnel, n.PersonnelStrength)
		}
	}

	if len(personnel) > 0 {
		sort.Float64s(personnel)
		total := 0.0
		for _, p := range personnel {
			total += p
		}
		mid := len(personnel) / 2
		median := personnel[mid]
		if len(personnel)%2 == 0 {
			median = (personnel[mid-1] + personnel[mid]) / 2
		}
		o.Personnel = &PersonnelStats{
			Total:    total,
			Average:  total / float64(len(personnel)),
			Median:   median,
			Largest:  personnel[len(personnel)-1],
			Smallest: personnel[0],
		}
	}
	return o
}

func analyzePeople(g *graph.Graph) PeopleStats {
	p := PeopleStats{
		ByType:        make(map[string]int),
		ByNationality: make(map[string]int),
		BirthDecades:  make(map[string]int),
	}
	for _, n := range g.Nodes() {
		if n.Type != entity.TypePerson {
			continue
		}
		p.TotalCount++

		if len(n.PersonTypes) > 0 {
			for _, t := range n.PersonTypes {
				p.ByType[t]++
			}
		} else {
			p.ByType["unknown"]++
		}

		p.ByNationality[orUnknown(n.Nationality)]++

		if len(n.BirthDate) >= 4 {
			if year, err := strconv.Atoi(n.BirthDate[:4]); err == nil {
				p.BirthDecades[decadeLabel(year)]++
			}
		}
	}
	return p
}

func analyzeAreas(g *graph.Graph) AreaStats {
	a := AreaStats{
		ByType:       make(map[string]int),
		ByCountry:    make(map[string]int),
		ByAdminLevel: make(map[string]int),
	}
	for _, n := range g.Nodes() {
		if n.Type != entity.TypeArea {
			continue
		}
		a.TotalCount++
		a.ByType[orUnknown(n.AreaType)]++
		a.ByCountry[orUnknown(n.Country)]++
		a.ByAdminLevel[orUnknown(n.AdminLevel)]++
	}
	return a
}
