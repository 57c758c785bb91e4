package entity

import (
	"strconv"
)

// Record is one source entity: a JSON-object-shaped map with an "id" field
// and an open set of domain fields. Records are immutable inputs; the only
// bookkeeping the library ever attaches is the SourceDatabaseKey tag added
// when combining collections.
type Record = map[string]any

// Collections maps a collection name (plural, e.g. "vehicles") to its records.
type Collections = map[string][]Record

// SourceDatabaseKey is the bookkeeping field attached to a record when
// multiple sources are combined, naming the source the record came from.
const SourceDatabaseKey = "_source_database"

// Type is a canonical (singular) entity type.
type Type string

const (
	TypeCountry        Type = "country"
	TypeVehicle        Type = "vehicle"
	TypeVehicleType    Type = "vehicleType"
	TypePerson         Type = "person"
	TypePeopleType     Type = "peopleType"
	TypeArea           Type = "area"
	TypeOrganization   Type = "militaryOrganization"
	TypeRepresentation Type = "representation"
)

// CollectionNames lists the supported collection names in processing order.
var CollectionNames = []string{
	"countries", "vehicles", "vehicleTypes", "people", "peopleTypes",
	"areas", "militaryOrganizations", "representations",
}

// collectionTypes maps plural collection names to canonical singular types.
var collectionTypes = map[string]Type{
	"countries":             TypeCountry,
	"vehicles":              TypeVehicle,
	"vehicleTypes":          TypeVehicleType,
	"people":                TypePerson,
	"peopleTypes":           TypePeopleType,
	"areas":                 TypeArea,
	"militaryOrganizations": TypeOrganization,
	"representations":       TypeRepresentation,
}

// CanonicalType returns the singular entity type for a collection name.
// Unknown collection names map to the empty type.
func CanonicalType(collection string) Type {
	return collectionTypes[collection]
}

// KnownTypes are the five types counted as consistent by the data-quality
// score.
var KnownTypes = []Type{TypeCountry, TypeVehicle, TypePerson, TypeArea, TypeOrganization}

// DirectReferenceFields are single-valued fields whose value is treated as
// another entity's id.
var DirectReferenceFields = []string{
	"owner", "country", "vehicleType", "parentArea", "headquarters", "nationality",
}

// ListReferenceFields are fields whose value is a list of entity ids.
var ListReferenceFields = []string{"personTypes", "childAreas"}

// Relationship labels produced by hierarchical reference extraction.
const (
	RelTemporalLocation  = "temporal_location"
	RelStateLocation     = "state_location"
	RelStateOrganization = "state_organization"
)

// NodeColors assigns a display color hint per entity type.
var NodeColors = map[Type]string{
	TypeCountry:        "#FF6B6B",
	TypeVehicle:        "#4ECDC4",
	TypePerson:         "#45B7D1",
	TypeArea:           "#96CEB4",
	TypeOrganization:   "#FECA57",
	TypeVehicleType:    "#A8E6CF",
	TypePeopleType:     "#DDA0DD",
	TypeRepresentation: "#F8B500",
}

// DefaultColor is used for types without an assigned color.
const DefaultColor = "#808080"

// ID returns the record's id, or "" if absent or not a string.
func ID(r Record) string {
	id, _ := r["id"].(string)
	return id
}

// String returns the named field as a string, or "" when absent or non-string.
func String(r Record, field string) string {
	s, _ := r[field].(string)
	return s
}

// PrimaryName extracts the primary display name of a record: the first
// "official" entry in names, else the first name, else one of name/title/
// value, else the id.
func PrimaryName(r Record) string {
	if name, ok := r["_primary_name"].(string); ok {
		return name
	}
	if names, ok := r["names"].([]any); ok && len(names) > 0 {
		for _, n := range names {
			if obj, ok := n.(map[string]any); ok && obj["nameType"] == "official" {
				if v, ok := obj["value"].(string); ok {
					return v
				}
			}
		}
		if obj, ok := names[0].(map[string]any); ok {
			if v, ok := obj["value"].(string); ok {
				return v
			}
			return ""
		}
		if s, ok := names[0].(string); ok {
			return s
		}
	}
	for _, field := range []string{"name", "title", "value"} {
		if v, ok := r[field]; ok {
			if s, ok := v.(string); ok {
				return s
			}
		}
	}
	if id := ID(r); id != "" {
		return id
	}
	return "Unknown"
}

// NameValues returns every value in the record's names list.
func NameValues(r Record) []string {
	names, ok := r["names"].([]any)
	if !ok {
		return nil
	}
	values := make([]string, 0, len(names))
	for _, n := range names {
		if obj, ok := n.(map[string]any); ok {
			if v, ok := obj["value"].(string); ok {
				values = append(values, v)
			}
		}
	}
	return values
}

// Year coerces a year-like value (JSON number, int, or numeric string) to an
// int. The second return reports whether the coercion succeeded.
func Year(v any) (int, bool) {
	switch y := v.(type) {
	case int:
		return y, true
	case int64:
		return int(y), true
	case float64:
		return int(y), true
	case string:
		n, err := strconv.Atoi(y)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// Number coerces a numeric value to float64.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// StringList coerces a JSON array of strings, skipping empty and non-string
// items.
func StringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
