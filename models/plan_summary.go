package models

// HazardRow is the derived view of one selected hazard
type HazardRow struct {
	Name              string       `json:"name"`
	Example           string       `json:"example,omitempty"`
	Training          string       `json:"training,omitempty"`
	Assessed          bool         `json:"assessed"`
	Severity          int          `json:"severity"`
	Likelihood        int          `json:"likelihood"`
	Score             int          `json:"score"`
	Category          RiskCategory `json:"category"`
	Mitigation        string       `json:"mitigation"`
	RequiresChecklist bool         `json:"requiresChecklist"`
	ChecklistType     *string      `json:"checklistType,omitempty"`
	RequiresPtW       bool         `json:"requiresPtW"`
	PermitType        *string      `json:"permitType,omitempty"`
}

// SRBInfo describes whether a plan must go to the Special Review Board
type SRBInfo struct {
	Required       bool     `json:"required"`
	Hazards        []string `json:"hazards"`
	ChecklistTypes []string `json:"checklistTypes"`
}

// PlanSummary holds everything derived from a stored plan for display
type PlanSummary struct {
	Hazards            []HazardRow         `json:"hazards"`
	ChecklistHazards   []string            `json:"checklistHazards"`
	PtwHazards         []string            `json:"ptwHazards"`
	FlaggedQuestions   []ScreeningQuestion `json:"flaggedQuestions"`
	ClearedQuestions   []ScreeningQuestion `json:"clearedQuestions"`
	UnmitigatedHazards []string            `json:"unmitigatedHazards"`
	OverallScore       int                 `json:"overallScore"`
	OverallCategory    RiskCategory        `json:"overallCategory"`
	SRB                SRBInfo             `json:"srb"`
}

// Summarize derives the plan's view model. It has no side effects, so repeated calls on
// an unchanged plan return equal summaries. Lists are never nil.
func Summarize(plan *SafetyPlan) PlanSummary {
	s := PlanSummary{
		Hazards:            make([]HazardRow, 0, len(plan.Hazards)),
		ChecklistHazards:   []string{},
		PtwHazards:         []string{},
		FlaggedQuestions:   []ScreeningQuestion{},
		ClearedQuestions:   []ScreeningQuestion{},
		UnmitigatedHazards: []string{},
		SRB:                SRBInfo{Hazards: []string{}, ChecklistTypes: []string{}},
	}

	checklistTypes := make(map[string]bool)
	for _, name := range plan.Hazards {
		row := HazardRow{Name: name, Category: CategoryForScore(0)}
		if def, ok := LookupHazard(name); ok {
			row.Example = def.Example
			row.Training = def.Training
		}

		a, assessed := plan.Assessments[name]
		if !assessed {
			s.UnmitigatedHazards = append(s.UnmitigatedHazards, name)
			s.Hazards = append(s.Hazards, row)
			continue
		}

		row.Assessed = true
		row.Severity = a.Severity
		row.Likelihood = a.Likelihood
		row.Score, row.Category = a.Score()
		row.Mitigation = a.Mitigation
		row.RequiresChecklist = a.RequiresChecklist
		row.ChecklistType = a.ChecklistType
		row.RequiresPtW = a.RequiresPtW
		row.PermitType = a.PermitType
		s.Hazards = append(s.Hazards, row)

		if a.Mitigation == "" {
			s.UnmitigatedHazards = append(s.UnmitigatedHazards, name)
		}
		if a.RequiresChecklist {
			s.ChecklistHazards = append(s.ChecklistHazards, name)
		}
		if a.RequiresPtW {
			s.PtwHazards = append(s.PtwHazards, name)
		}
		if row.Score > s.OverallScore {
			s.OverallScore = row.Score
		}
		if row.Category == RiskExtreme {
			s.SRB.Required = true
			s.SRB.Hazards = append(s.SRB.Hazards, name)
			if a.ChecklistType != nil && !checklistTypes[*a.ChecklistType] {
				checklistTypes[*a.ChecklistType] = true
				s.SRB.ChecklistTypes = append(s.SRB.ChecklistTypes, *a.ChecklistType)
			}
		}
	}
	s.OverallCategory = CategoryForScore(s.OverallScore)

	answers := plan.ScreeningAnswers.Values()
	for i, q := range ScreeningQuestions {
		if answers[i] == AnswerYes {
			s.FlaggedQuestions = append(s.FlaggedQuestions, q)
		} else {
			s.ClearedQuestions = append(s.ClearedQuestions, q)
		}
	}

	return s
}
