package entity

import (
	"testing"
)

func TestCanonicalType(t *testing.T) {
	tests := []struct {
		collection string
		want       Type
	}{
		{"countries", TypeCountry},
		{"vehicles", TypeVehicle},
		{"vehicleTypes", TypeVehicleType},
		{"people", TypePerson},
		{"peopleTypes", TypePeopleType},
		{"areas", TypeArea},
		{"militaryOrganizations", TypeOrganization},
		{"representations", TypeRepresentation},
		{"unknown", Type("")},
	}
	for _, tt := range tests {
		if got := CanonicalType(tt.collection); got != tt.want {
			t.Errorf("CanonicalType(%q) = %q, want %q", tt.collection, got, tt.want)
		}
	}
}

func TestPrimaryName(t *testing.T) {
	tests := []struct {
		name   string
		record Record
		want   string
	}{
		{
			name: "official name preferred",
			record: Record{
				"id": "v1",
				"names": []any{
					map[string]any{"nameType": "alias", "value": "Abrams"},
					map[string]any{"nameType": "official", "value": "M1 Abrams"},
				},
			},
			want: "M1 Abrams",
		},
		{
			name: "first name when no official",
			record: Record{
				"names": []any{
					map[string]any{"nameType": "alias", "value": "T-72"},
				},
			},
			want: "T-72",
		},
		{
			name:   "name field fallback",
			record: Record{"id": "v2", "name": "Leopard 2"},
			want:   "Leopard 2",
		},
		{
			name:   "title fallback",
			record: Record{"title": "General"},
			want:   "General",
		},
		{
			name:   "id fallback",
			record: Record{"id": "v3"},
			want:   "v3",
		},
		{
			name:   "unknown when nothing usable",
			record: Record{},
			want:   "Unknown",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PrimaryName(tt.record); got != tt.want {
				t.Errorf("PrimaryName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestYear(t *testing.T) {
	tests := []struct {
		value  any
		want   int
		wantOK bool
	}{
		{1991, 1991, true},
		{int64(2005), 2005, true},
		{1984.0, 1984, true},
		{"2010", 2010, true},
		{"not-a-year", 0, false},
		{nil, 0, false},
		{[]any{}, 0, false},
	}
	for _, tt := range tests {
		got, ok := Year(tt.value)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Year(%v) = (%d, %v), want (%d, %v)", tt.value, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestStringList(t *testing.T) {
	got := StringList([]any{"a", "", 7, "b"})
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("StringList() = %v, want [a b]", got)
	}
	if StringList("not-a-list") != nil {
		t.Error("StringList(non-list) != nil")
	}
}

func TestNameValues(t *testing.T) {
	record := Record{
		"names": []any{
			map[string]any{"nameType": "official", "value": "Lithuania"},
			map[string]any{"nameType": "alias", "value": "LT"},
			"not-an-object",
		},
	}
	got := NameValues(record)
	if len(got) != 2 || got[0] != "Lithuania" || got[1] != "LT" {
		t.Errorf("NameValues() = %v, want [Lithuania LT]", got)
	}
}

func TestNodeColors(t *testing.T) {
	for _, entityType := range KnownTypes {
		if _, ok := NodeColors[entityType]; !ok {
			t.Errorf("no color assigned for %q", entityType)
		}
	}
}
