// Package entity defines the loosely-typed source records the analyzer
// ingests and the field registries used for relationship inference.
//
// A Record is a JSON-object-shaped map owned by the caller. Records arrive
// grouped into named Collections (countries, vehicles, people, ...) and the
// collection name determines the canonical entity type of every record in it.
// Collection names are plural in the source data and are singularized once at
// ingestion; all downstream type comparisons use the singular form.
//
// The reference-field registries (DirectReferenceFields, ListReferenceFields,
// hierarchical labels) are part of the library contract: external tooling
// queries them to populate filter pickers and to understand which fields
// produce edges.
package entity
