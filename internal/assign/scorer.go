// Package assign scores candidate team members against a task's skill
// and availability requirements.
package assign

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ashwin2912/alfred-sub000/internal/schema"
)

// Overall-score mix. Fixed design constants.
const (
	skillWeight        = 0.6
	availabilityWeight = 0.4
)

// Score computes the fitness of one member for one requirement.
// Pure and deterministic: no I/O, never fails. Out-of-range inputs are
// the loaders' job to reject, not this function's.
func Score(profile schema.SkillProfile, committedHours float64, req schema.TaskRequirement) schema.AssignmentScore {
	skillScore := skillFit(profile, req.RequiredSkills)
	availScore := availabilityFit(profile.AvailableHours(committedHours), req.EstimatedHours)
	overall := skillWeight*skillScore + availabilityWeight*availScore

	return schema.AssignmentScore{
		MemberID:          profile.MemberID,
		MemberName:        profile.Name,
		SkillScore:        skillScore,
		AvailabilityScore: availScore,
		OverallScore:      overall,
		Reason:            reason(skillScore, availScore),
	}
}

// skillFit averages the best-match proficiency weight over the required
// skills. An empty requirement list means no skill constraint: 100.
func skillFit(profile schema.SkillProfile, required []string) float64 {
	if len(required) == 0 {
		return 100
	}
	var sum float64
	for _, want := range required {
		sum += bestMatch(profile.Skills, want)
	}
	return 100 * sum / float64(len(required))
}

// bestMatch finds the highest proficiency weight among profile skills
// matching the required name. Matching is case-insensitive substring in
// either direction, so "python" matches "Python (Django)" and
// "reactjs" matches "react".
func bestMatch(skills []schema.Skill, required string) float64 {
	want := strings.ToLower(strings.TrimSpace(required))
	var best float64
	for _, s := range skills {
		have := strings.ToLower(strings.TrimSpace(s.Name))
		if have == "" || want == "" {
			continue
		}
		if !strings.Contains(have, want) && !strings.Contains(want, have) {
			continue
		}
		if w := s.Proficiency.Weight(); w > best {
			best = w
		}
	}
	return best
}

// availabilityFit compares free hours to the estimate.
func availabilityFit(available, estimated float64) float64 {
	switch {
	case available >= estimated:
		return 100
	case available > 0:
		return 100 * available / estimated
	default:
		return 0
	}
}

func reason(skillScore, availScore float64) string {
	skillLabel := "weak"
	switch {
	case skillScore >= 80:
		skillLabel = "strong"
	case skillScore >= 50:
		skillLabel = "moderate"
	}
	availLabel := "low"
	switch {
	case availScore >= 80:
		availLabel = "good"
	case availScore >= 50:
		availLabel = "limited"
	}
	return fmt.Sprintf("%s skill match (%.0f), %s availability (%.0f)",
		skillLabel, skillScore, availLabel, availScore)
}

// Rank scores every active member of the roster against the
// requirement and returns the top n by overall score. Inactive
// profiles are excluded before scoring. The sort is stable: ties keep
// roster order. n <= 0 returns the full ranking.
func Rank(roster []schema.SkillProfile, committed map[string]float64, req schema.TaskRequirement, n int) []schema.AssignmentScore {
	scores := make([]schema.AssignmentScore, 0, len(roster))
	for _, p := range roster {
		if !p.IsActive {
			continue
		}
		scores = append(scores, Score(p, committed[p.MemberID], req))
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].OverallScore > scores[j].OverallScore
	})
	if n > 0 && len(scores) > n {
		scores = scores[:n]
	}
	return scores
}
