package dto

import (
	"errors"
	"strings"
)

// FilterRequest carries the filter criteria for POST /filter.
type FilterRequest struct {
	Filters map[string]any `json:"filters" binding:"required"`
}

// Validate performs validation on FilterRequest
func (r *FilterRequest) Validate() error {
	if len(r.Filters) == 0 {
		return errors.New("filters cannot be empty")
	}
	return nil
}

// AdvancedFilterRequest carries an AND/OR/NOT filter combination.
type AdvancedFilterRequest struct {
	Logic      string            `json:"logic"`
	Conditions []FilterCondition `json:"conditions" binding:"required"`
}

// FilterCondition is one branch of an advanced filter.
type FilterCondition struct {
	Filter map[string]any `json:"filter" binding:"required"`
	Not    bool           `json:"not"`
}

// Validate performs validation on AdvancedFilterRequest
func (r *AdvancedFilterRequest) Validate() error {
	if len(r.Conditions) == 0 {
		return errors.New("conditions cannot be empty")
	}
	logic := strings.ToUpper(strings.TrimSpace(r.Logic))
	if logic != "" && logic != "AND" && logic != "OR" {
		return errors.New("logic must be AND or OR")
	}
	return nil
}

// SearchRequest carries the search terms for POST /search.
type SearchRequest struct {
	Terms []string `json:"terms" binding:"required"`
	Mode  string   `json:"mode"` // any or all
}

// Validate performs validation on SearchRequest
func (r *SearchRequest) Validate() error {
	if len(r.Terms) == 0 {
		return errors.New("terms cannot be empty")
	}
	for _, term := range r.Terms {
		if strings.TrimSpace(term) == "" {
			return errors.New("terms cannot contain empty strings")
		}
	}
	return nil
}

// PathRequest asks for paths between two entities.
type PathRequest struct {
	Source    string `json:"source" binding:"required"`
	Target    string `json:"target" binding:"required"`
	MaxPaths  int    `json:"max_paths"`
	MaxLength int    `json:"max_length"`
}

// Validate performs validation on PathRequest
func (r *PathRequest) Validate() error {
	if strings.TrimSpace(r.Source) == "" {
		return errors.New("source cannot be empty")
	}
	if strings.TrimSpace(r.Target) == "" {
		return errors.New("target cannot be empty")
	}
	return nil
}

// SubgraphRequest asks for the induced subgraph around a set of entities.
type SubgraphRequest struct {
	IDs              []string `json:"ids" binding:"required"`
	IncludeNeighbors bool     `json:"include_neighbors"`
	MaxDistance      int      `json:"max_distance"`
}

// Validate performs validation on SubgraphRequest
func (r *SubgraphRequest) Validate() error {
	if len(r.IDs) == 0 {
		return errors.New("ids cannot be empty")
	}
	return nil
}

// CompareRequest selects the countries for a comparison.
type CompareRequest struct {
	Countries []string `json:"countries"`
}

// Result represents a generic API result
type Result struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// GraphSummary is the compact graph payload returned by filter and search
// endpoints.
type GraphSummary struct {
	NodeCount int            `json:"node_count"`
	EdgeCount int            `json:"edge_count"`
	Nodes     any            `json:"nodes"`
	Edges     any            `json:"edges"`
	Types     map[string]int `json:"types"`
}
