package models

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed hazards.yaml
var hazardsYAML []byte

// HazardDefinition is a static catalog entry describing a selectable hazard
type HazardDefinition struct {
	Name              string `json:"name" yaml:"name"`
	Example           string `json:"example" yaml:"example"`
	Training          string `json:"training,omitempty" yaml:"training"`
	RequiresChecklist bool   `json:"requires_checklist" yaml:"requires_checklist"`
	ChecklistType     string `json:"checklist_type,omitempty" yaml:"checklist_type"`
	RequiresPtW       bool   `json:"requires_ptw" yaml:"requires_ptw"`
	PermitType        string `json:"permit_type,omitempty" yaml:"permit_type"`
}

type hazardCatalog struct {
	Hazards []HazardDefinition `yaml:"hazards"`
}

var (
	hazardList  []HazardDefinition
	hazardIndex map[string]HazardDefinition
)

func init() {
	var catalog hazardCatalog
	if err := yaml.Unmarshal(hazardsYAML, &catalog); err != nil {
		panic("invalid embedded hazard catalog: " + err.Error())
	}
	hazardList = catalog.Hazards
	hazardIndex = make(map[string]HazardDefinition, len(hazardList))
	for _, h := range hazardList {
		hazardIndex[h.Name] = h
	}
}

// Hazards returns the catalog in display order
func Hazards() []HazardDefinition {
	out := make([]HazardDefinition, len(hazardList))
	copy(out, hazardList)
	return out
}

// LookupHazard finds a catalog entry by exact name. Unknown names have no defaults.
func LookupHazard(name string) (HazardDefinition, bool) {
	h, ok := hazardIndex[name]
	return h, ok
}

// DefaultAssessment prefills an assessment from the catalog for the form UI.
// Unknown hazards get the lowest ratings and no requirements.
func DefaultAssessment(name string) HazardAssessment {
	a := HazardAssessment{Severity: MinRating, Likelihood: MinRating}
	if h, ok := LookupHazard(name); ok {
		a.RequiresChecklist = h.RequiresChecklist
		a.RequiresPtW = h.RequiresPtW
		if h.ChecklistType != "" {
			ct := h.ChecklistType
			a.ChecklistType = &ct
		}
		if h.PermitType != "" {
			pt := h.PermitType
			a.PermitType = &pt
		}
	}
	return a
}
