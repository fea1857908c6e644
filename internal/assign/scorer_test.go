package assign

import (
	"math"
	"testing"

	"github.com/ashwin2912/alfred-sub000/internal/schema"
)

func profile(name string, capacity float64, skills ...schema.Skill) schema.SkillProfile {
	return schema.SkillProfile{
		MemberID:            name,
		Name:                name,
		Skills:              skills,
		WeeklyCapacityHours: capacity,
		IsActive:            true,
	}
}

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

// ─── Score ─────────────────────────────────────────────────────────────────

func TestScore_PerfectFit(t *testing.T) {
	p := profile("ada", 40, schema.Skill{Name: "Python", Proficiency: schema.ProficiencyExpert})
	req := schema.TaskRequirement{RequiredSkills: []string{"python"}, EstimatedHours: 20}

	s := Score(p, 10, req)
	if !almostEqual(s.SkillScore, 100) {
		t.Errorf("skill score = %v, want 100", s.SkillScore)
	}
	if !almostEqual(s.AvailabilityScore, 100) {
		t.Errorf("availability score = %v, want 100", s.AvailabilityScore)
	}
	if !almostEqual(s.OverallScore, 100) {
		t.Errorf("overall score = %v, want 100", s.OverallScore)
	}
}

func TestScore_Overcommitted(t *testing.T) {
	// 40h capacity, 10h committed, 60h asked: availability 100*30/60 = 50.
	p := profile("ada", 40, schema.Skill{Name: "Python", Proficiency: schema.ProficiencyExpert})
	req := schema.TaskRequirement{RequiredSkills: []string{"python"}, EstimatedHours: 60}

	s := Score(p, 10, req)
	if !almostEqual(s.AvailabilityScore, 50) {
		t.Errorf("availability score = %v, want 50", s.AvailabilityScore)
	}
	if !almostEqual(s.OverallScore, 80) {
		t.Errorf("overall score = %v, want 80 (0.6*100 + 0.4*50)", s.OverallScore)
	}
}

func TestScore_NoSkillConstraint(t *testing.T) {
	p := profile("ada", 40)
	req := schema.TaskRequirement{RequiredSkills: nil, EstimatedHours: 10}

	s := Score(p, 0, req)
	if !almostEqual(s.SkillScore, 100) {
		t.Errorf("skill score = %v, want 100 for empty requirements", s.SkillScore)
	}
}

func TestScore_NoAvailability(t *testing.T) {
	p := profile("ada", 40, schema.Skill{Name: "Go", Proficiency: schema.ProficiencyAdvanced})
	req := schema.TaskRequirement{RequiredSkills: []string{"go"}, EstimatedHours: 10}

	s := Score(p, 45, req) // committed past capacity
	if !almostEqual(s.AvailabilityScore, 0) {
		t.Errorf("availability score = %v, want 0", s.AvailabilityScore)
	}
	if !almostEqual(s.OverallScore, 0.6*75) {
		t.Errorf("overall score = %v, want %v", s.OverallScore, 0.6*75)
	}
}

func TestScore_SubstringMatchBothDirections(t *testing.T) {
	cases := []struct {
		name     string
		have     string
		want     string
		expected float64
	}{
		{"required in skill", "Python (Django)", "python", 100},
		{"skill in required", "react", "reactjs", 100},
		{"case insensitive", "PYTHON", "Python", 100},
		{"no match", "java", "python", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := profile("m", 40, schema.Skill{Name: tc.have, Proficiency: schema.ProficiencyExpert})
			s := Score(p, 0, schema.TaskRequirement{RequiredSkills: []string{tc.want}, EstimatedHours: 1})
			if !almostEqual(s.SkillScore, tc.expected) {
				t.Errorf("skill score = %v, want %v", s.SkillScore, tc.expected)
			}
		})
	}
}

func TestScore_HighestTierWins(t *testing.T) {
	p := profile("ada", 40,
		schema.Skill{Name: "python scripting", Proficiency: schema.ProficiencyBeginner},
		schema.Skill{Name: "python", Proficiency: schema.ProficiencyAdvanced},
	)
	s := Score(p, 0, schema.TaskRequirement{RequiredSkills: []string{"python"}, EstimatedHours: 1})
	if !almostEqual(s.SkillScore, 75) {
		t.Errorf("skill score = %v, want 75 (advanced wins over beginner)", s.SkillScore)
	}
}

func TestScore_AveragesOverRequiredSkills(t *testing.T) {
	p := profile("ada", 40,
		schema.Skill{Name: "go", Proficiency: schema.ProficiencyExpert},
	)
	s := Score(p, 0, schema.TaskRequirement{RequiredSkills: []string{"go", "rust"}, EstimatedHours: 1})
	if !almostEqual(s.SkillScore, 50) {
		t.Errorf("skill score = %v, want 50 (one of two skills matched)", s.SkillScore)
	}
}

func TestScore_ZeroEstimate(t *testing.T) {
	p := profile("ada", 0)
	s := Score(p, 0, schema.TaskRequirement{EstimatedHours: 0})
	if !almostEqual(s.AvailabilityScore, 100) {
		t.Errorf("availability score = %v, want 100 for zero estimate", s.AvailabilityScore)
	}
}

func TestScore_ReasonBuckets(t *testing.T) {
	p := profile("ada", 40, schema.Skill{Name: "python", Proficiency: schema.ProficiencyExpert})
	s := Score(p, 10, schema.TaskRequirement{RequiredSkills: []string{"python"}, EstimatedHours: 20})
	if s.Reason == "" {
		t.Fatal("expected non-empty reason")
	}
	if want := "strong skill match (100), good availability (100)"; s.Reason != want {
		t.Errorf("reason = %q, want %q", s.Reason, want)
	}
}

// ─── Rank ──────────────────────────────────────────────────────────────────

func TestRank_OrdersByOverallScore(t *testing.T) {
	roster := []schema.SkillProfile{
		profile("junior", 40, schema.Skill{Name: "go", Proficiency: schema.ProficiencyBeginner}),
		profile("senior", 40, schema.Skill{Name: "go", Proficiency: schema.ProficiencyExpert}),
	}
	req := schema.TaskRequirement{RequiredSkills: []string{"go"}, EstimatedHours: 10}

	ranked := Rank(roster, nil, req, 0)
	if len(ranked) != 2 {
		t.Fatalf("expected 2 scores, got %d", len(ranked))
	}
	if ranked[0].MemberID != "senior" {
		t.Errorf("expected senior first, got %q", ranked[0].MemberID)
	}
}

func TestRank_StableOnTies(t *testing.T) {
	roster := []schema.SkillProfile{
		profile("first", 40, schema.Skill{Name: "go", Proficiency: schema.ProficiencyExpert}),
		profile("second", 40, schema.Skill{Name: "go", Proficiency: schema.ProficiencyExpert}),
		profile("third", 40, schema.Skill{Name: "go", Proficiency: schema.ProficiencyExpert}),
	}
	req := schema.TaskRequirement{RequiredSkills: []string{"go"}, EstimatedHours: 10}

	ranked := Rank(roster, nil, req, 0)
	order := []string{"first", "second", "third"}
	for i, want := range order {
		if ranked[i].MemberID != want {
			t.Errorf("position %d: got %q, want %q (ties must keep roster order)", i, ranked[i].MemberID, want)
		}
	}
}

func TestRank_ExcludesInactive(t *testing.T) {
	inactive := profile("gone", 40, schema.Skill{Name: "go", Proficiency: schema.ProficiencyExpert})
	inactive.IsActive = false
	roster := []schema.SkillProfile{
		inactive,
		profile("here", 40, schema.Skill{Name: "go", Proficiency: schema.ProficiencyBeginner}),
	}
	req := schema.TaskRequirement{RequiredSkills: []string{"go"}, EstimatedHours: 10}

	ranked := Rank(roster, nil, req, 0)
	if len(ranked) != 1 {
		t.Fatalf("expected 1 score, got %d", len(ranked))
	}
	if ranked[0].MemberID != "here" {
		t.Errorf("expected only active member, got %q", ranked[0].MemberID)
	}
}

func TestRank_TopN(t *testing.T) {
	roster := []schema.SkillProfile{
		profile("a", 40), profile("b", 40), profile("c", 40),
	}
	ranked := Rank(roster, nil, schema.TaskRequirement{EstimatedHours: 1}, 2)
	if len(ranked) != 2 {
		t.Errorf("expected top 2, got %d", len(ranked))
	}
}

func TestRank_UsesCommittedHours(t *testing.T) {
	roster := []schema.SkillProfile{
		profile("busy", 40, schema.Skill{Name: "go", Proficiency: schema.ProficiencyExpert}),
		profile("free", 40, schema.Skill{Name: "go", Proficiency: schema.ProficiencyExpert}),
	}
	committed := map[string]float64{"busy": 40, "free": 0}
	req := schema.TaskRequirement{RequiredSkills: []string{"go"}, EstimatedHours: 10}

	ranked := Rank(roster, committed, req, 0)
	if ranked[0].MemberID != "free" {
		t.Errorf("expected free member ranked first, got %q", ranked[0].MemberID)
	}
	if !almostEqual(ranked[1].AvailabilityScore, 0) {
		t.Errorf("busy member availability = %v, want 0", ranked[1].AvailabilityScore)
	}
}
