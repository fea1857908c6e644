package schema

// AssignmentScore is the computed fitness of one member for one task.
// Created once per scoring call and never mutated.
type AssignmentScore struct {
	MemberID          string  `json:"memberId"`
	MemberName        string  `json:"memberName"`
	SkillScore        float64 `json:"skillScore"`
	AvailabilityScore float64 `json:"availabilityScore"`
	OverallScore      float64 `json:"overallScore"`
	Reason            string  `json:"reason"`
}
