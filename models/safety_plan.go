package models

import (
	"strings"
	"time"
)

// Defaults applied to new safety plans
const (
	DefaultRegion = "Europe - Ireland"
	DefaultSystem = "Others"
)

// Systems a plan can be raised against
var Systems = []string{"EUV", "DUV", "CSCM", "Trumpf", "Others"}

// HazardAssessment is the per-plan rating and mitigation for one selected hazard
type HazardAssessment struct {
	Severity          int     `json:"severity"`
	Likelihood        int     `json:"likelihood"`
	Mitigation        string  `json:"mitigation"`
	RequiresChecklist bool    `json:"requiresChecklist"`
	ChecklistType     *string `json:"checklistType,omitempty"`
	RequiresPtW       bool    `json:"requiresPtW"`
	PermitType        *string `json:"permitType,omitempty"`
}

// Score returns the numeric score and band of this assessment
func (a HazardAssessment) Score() (int, RiskCategory) {
	return ScoreRisk(a.Severity, a.Likelihood)
}

// ScreeningAnswers holds the eleven fixed yes/no screening questions
type ScreeningAnswers struct {
	Q1SpecializedTraining string `json:"q1_specializedTraining"`
	Q2Chemicals           string `json:"q2_chemicals"`
	Q3ImpactOthers        string `json:"q3_impactOthers"`
	Q4Falls               string `json:"q4_falls"`
	Q5Barricades          string `json:"q5_barricades"`
	Q6Loto                string `json:"q6_loto"`
	Q7Lifting             string `json:"q7_lifting"`
	Q8Ergonomics          string `json:"q8_ergonomics"`
	Q9OtherConcerns       string `json:"q9_otherConcerns"`
	Q10HeadInjury         string `json:"q10_headInjury"`
	Q11OtherPPE           string `json:"q11_otherPPE"`
}

// ScreeningQuestion is one fixed question with its display label
type ScreeningQuestion struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// ScreeningQuestions lists the questions in declaration order
var ScreeningQuestions = []ScreeningQuestion{
	{Key: "q1_specializedTraining", Label: "Specialized Training"},
	{Key: "q2_chemicals", Label: "Chemicals / Hazardous Materials"},
	{Key: "q3_impactOthers", Label: "Other Work in Area"},
	{Key: "q4_falls", Label: "Fall Hazard"},
	{Key: "q5_barricades", Label: "Barricades Required"},
	{Key: "q6_loto", Label: "LOTO Required"},
	{Key: "q7_lifting", Label: "Heavy Lifting"},
	{Key: "q8_ergonomics", Label: "Ergonomic Concerns"},
	{Key: "q9_otherConcerns", Label: "Other Safety Concerns"},
	{Key: "q10_headInjury", Label: "Head Injury Risk"},
	{Key: "q11_otherPPE", Label: "Additional PPE"},
}

// Values returns the answers aligned with ScreeningQuestions
func (s ScreeningAnswers) Values() []string {
	return []string{
		s.Q1SpecializedTraining,
		s.Q2Chemicals,
		s.Q3ImpactOthers,
		s.Q4Falls,
		s.Q5Barricades,
		s.Q6Loto,
		s.Q7Lifting,
		s.Q8Ergonomics,
		s.Q9OtherConcerns,
		s.Q10HeadInjury,
		s.Q11OtherPPE,
	}
}

// SafetyPlan is a pre-task safety plan
type SafetyPlan struct {
	ID                int64                       `json:"id"`
	Group             string                      `json:"group"`
	TaskName          string                      `json:"taskName"`
	Date              string                      `json:"date"`
	Location          string                      `json:"location"`
	Shift             string                      `json:"shift"`
	MachineNumber     string                      `json:"machineNumber"`
	Region            string                      `json:"region"`
	System            string                      `json:"system"`
	CanSocialDistance string                      `json:"canSocialDistance"`
	ScreeningAnswers                              // flattened q1..q11
	Hazards           []string                    `json:"hazards"`
	Assessments       map[string]HazardAssessment `json:"assessments"`
	LeadName          string                      `json:"leadName"`
	ApproverName      *string                     `json:"approverName"`
	Engineers         []string                    `json:"engineers"`
	Comments          *string                     `json:"comments"`
	Status            PlanStatus                  `json:"status"`
	ShareToken        *string                     `json:"shareToken"`
	Revision          int                         `json:"revision"`
	CreatedAt         time.Time                   `json:"createdAt"`
}

// Clone returns a deep copy so callers can mutate without touching stored state
func (p *SafetyPlan) Clone() *SafetyPlan {
	c := *p
	c.Hazards = append(make([]string, 0, len(p.Hazards)), p.Hazards...)
	c.Engineers = append(make([]string, 0, len(p.Engineers)), p.Engineers...)
	c.Assessments = make(map[string]HazardAssessment, len(p.Assessments))
	for k, v := range p.Assessments {
		c.Assessments[k] = v
	}
	if p.ApproverName != nil {
		v := *p.ApproverName
		c.ApproverName = &v
	}
	if p.Comments != nil {
		v := *p.Comments
		c.Comments = &v
	}
	if p.ShareToken != nil {
		v := *p.ShareToken
		c.ShareToken = &v
	}
	return &c
}

// SafetyPlanFilter narrows a plan listing
type SafetyPlanFilter struct {
	Status PlanStatus
	Group  string
}

// SafetyPlanForm is the submitted body for creating or editing a plan
type SafetyPlanForm struct {
	Group             string                      `json:"group"`
	TaskName          string                      `json:"taskName"`
	Date              string                      `json:"date"`
	Location          string                      `json:"location"`
	Shift             string                      `json:"shift"`
	MachineNumber     string                      `json:"machineNumber"`
	Region            string                      `json:"region"`
	System            string                      `json:"system"`
	CanSocialDistance string                      `json:"canSocialDistance"`
	ScreeningAnswers
	Hazards          []string                    `json:"hazards"`
	Assessments      map[string]HazardAssessment `json:"assessments"`
	LeadName         string                      `json:"leadName"`
	ApproverName     *string                     `json:"approverName"`
	Engineers        []string                    `json:"engineers"`
	Comments         *string                     `json:"comments"`
	Status           string                      `json:"status"`
	ExpectedRevision *int                        `json:"expectedRevision,omitempty"`
}

// ApplyPreferences fills blank group/system/region from the caller's preferences
func (f *SafetyPlanForm) ApplyPreferences(prefs UserPreferences) {
	if strings.TrimSpace(f.Group) == "" {
		f.Group = prefs.Group
	}
	if strings.TrimSpace(f.System) == "" {
		f.System = prefs.System
	}
	if strings.TrimSpace(f.Region) == "" && prefs.Site != "" {
		f.Region = prefs.Site
	}
}

// Validate validates the safety plan form data
func (f *SafetyPlanForm) Validate() ValidationErrors {
	var errs ValidationErrors

	requireText(&errs, "group", "Group", f.Group)
	requireText(&errs, "taskName", "Task description", f.TaskName)
	requireDate(&errs, "date", "Date", f.Date)
	requireText(&errs, "location", "Location", f.Location)
	requireText(&errs, "shift", "Shift", f.Shift)
	requireText(&errs, "machineNumber", "Machine Number", f.MachineNumber)
	requireText(&errs, "leadName", "Lead Name", f.LeadName)

	if f.System != "" {
		requireOneOf(&errs, "system", f.System, Systems...)
	}
	requireYesNo(&errs, "canSocialDistance", f.CanSocialDistance)
	for i, q := range ScreeningQuestions {
		requireYesNo(&errs, q.Key, f.ScreeningAnswers.Values()[i])
	}

	seen := make(map[string]bool, len(f.Hazards))
	for _, h := range f.Hazards {
		h = strings.TrimSpace(h)
		if h == "" {
			errs.Add("hazards", "Hazard names must not be blank")
			continue
		}
		if seen[h] {
			errs.Add("hazards", "Hazard \""+h+"\" is selected more than once")
		}
		seen[h] = true
	}
	for name, a := range f.Assessments {
		name = strings.TrimSpace(name)
		if !seen[name] {
			errs.Add("assessments", "Assessment for \""+name+"\" has no matching selected hazard")
		}
		if !ValidRating(a.Severity) {
			errs.Add("assessments."+name+".severity", "Severity for \""+name+"\" must be between 1 and 4")
		}
		if !ValidRating(a.Likelihood) {
			errs.Add("assessments."+name+".likelihood", "Likelihood for \""+name+"\" must be between 1 and 4")
		}
	}

	for _, e := range f.Engineers {
		if strings.TrimSpace(e) == "" {
			errs.Add("engineers", "Engineer names must not be blank")
			break
		}
	}

	if f.Status != "" {
		if _, err := ParsePlanStatus(f.Status); err != nil {
			errs.Add("status", err.Error())
		}
	}

	return errs
}

// ToPlan validates the form and builds a typed plan. Status defaults to pending.
func (f *SafetyPlanForm) ToPlan() (*SafetyPlan, error) {
	if errs := f.Validate(); errs.HasErrors() {
		return nil, errs
	}

	status := StatusPending
	if f.Status != "" {
		status = PlanStatus(f.Status)
	}

	assessments := make(map[string]HazardAssessment, len(f.Assessments))
	for name, a := range f.Assessments {
		a.Mitigation = strings.TrimSpace(a.Mitigation)
		a.ChecklistType = trimmedOrNil(a.ChecklistType)
		a.PermitType = trimmedOrNil(a.PermitType)
		assessments[strings.TrimSpace(name)] = a
	}

	engineers := make([]string, 0, len(f.Engineers))
	for _, e := range f.Engineers {
		engineers = append(engineers, strings.TrimSpace(e))
	}

	hazards := make([]string, 0, len(f.Hazards))
	for _, h := range f.Hazards {
		hazards = append(hazards, strings.TrimSpace(h))
	}

	return &SafetyPlan{
		Group:             strings.TrimSpace(f.Group),
		TaskName:          strings.TrimSpace(f.TaskName),
		Date:              f.Date,
		Location:          strings.TrimSpace(f.Location),
		Shift:             strings.TrimSpace(f.Shift),
		MachineNumber:     strings.TrimSpace(f.MachineNumber),
		Region:            withDefault(f.Region, DefaultRegion),
		System:            withDefault(f.System, DefaultSystem),
		CanSocialDistance: f.CanSocialDistance,
		ScreeningAnswers:  f.ScreeningAnswers,
		Hazards:           hazards,
		Assessments:       assessments,
		LeadName:          strings.TrimSpace(f.LeadName),
		ApproverName:      trimmedOrNil(f.ApproverName),
		Engineers:         engineers,
		Comments:          trimmedOrNil(f.Comments),
		Status:            status,
	}, nil
}
