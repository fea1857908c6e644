package schema

import "strings"

// Proficiency is an ordinal skill tier used as a scoring weight.
type Proficiency string

const (
	ProficiencyBeginner     Proficiency = "beginner"
	ProficiencyIntermediate Proficiency = "intermediate"
	ProficiencyAdvanced     Proficiency = "advanced"
	ProficiencyExpert       Proficiency = "expert"
)

// proficiencyWeights maps each tier to its scoring weight.
// Fixed design constants, not runtime-configurable.
var proficiencyWeights = map[Proficiency]float64{
	ProficiencyBeginner:     0.25,
	ProficiencyIntermediate: 0.50,
	ProficiencyAdvanced:     0.75,
	ProficiencyExpert:       1.00,
}

// Weight returns the scoring weight for the tier, or 0 for an unknown tier.
func (p Proficiency) Weight() float64 { return proficiencyWeights[p] }

// Valid reports whether p is one of the four known tiers.
func (p Proficiency) Valid() bool {
	_, ok := proficiencyWeights[p]
	return ok
}

// ParseProficiency normalizes a raw string to a Proficiency.
func ParseProficiency(s string) (Proficiency, bool) {
	p := Proficiency(strings.ToLower(strings.TrimSpace(s)))
	return p, p.Valid()
}

// Skill is one skill a team member holds.
type Skill struct {
	Name        string      `json:"name" yaml:"name"`
	Proficiency Proficiency `json:"proficiency" yaml:"proficiency"`
	Years       float64     `json:"years,omitempty" yaml:"years,omitempty"`
}

// SkillProfile describes a team member's skills and weekly capacity.
// Committed hours are derived externally (sum of open-task estimates)
// and supplied per call, never stored on the profile.
type SkillProfile struct {
	MemberID            string  `json:"memberId" yaml:"member_id"`
	Name                string  `json:"name" yaml:"name"`
	Skills              []Skill `json:"skills" yaml:"skills"`
	WeeklyCapacityHours float64 `json:"weeklyCapacityHours" yaml:"weekly_capacity_hours"`
	IsActive            bool    `json:"isActive" yaml:"is_active"`
}

// AvailableHours returns the member's free capacity given the hours
// already committed, floored at zero.
func (p SkillProfile) AvailableHours(committed float64) float64 {
	avail := p.WeeklyCapacityHours - committed
	if avail < 0 {
		return 0
	}
	return avail
}
