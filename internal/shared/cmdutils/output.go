package cmdutils

import (
	"fmt"

	"github.com/ashwin2912/alfred-sub000/internal/schema"
	"github.com/ashwin2912/alfred-sub000/internal/shared/stringutils"
)

const logo = "🎩"

// PrintReport renders a materialization result for the terminal.
func PrintReport(res *schema.MaterializationResult) {
	fmt.Printf("\n%s %s — start %s\n", logo, res.ProjectName, res.StartDate)
	fmt.Printf("Run %s\n\n", res.RunID)

	for _, m := range res.Milestones {
		fmt.Printf("  %s: %d created, %d failed", m.Name, m.Created, m.Failed)
		if m.SubtasksCreated+m.SubtasksFailed > 0 {
			fmt.Printf(" (subtasks: %d created, %d failed)", m.SubtasksCreated, m.SubtasksFailed)
		}
		fmt.Println()
		for _, f := range m.Failures {
			fmt.Printf("    ✗ %s: %s\n", f.TaskName, stringutils.Truncate(f.Err, 120))
		}
		for _, u := range m.Unresolved {
			fmt.Printf("    ~ %s → %s (link skipped)\n", u.TaskName, u.DependsOn)
		}
	}
	fmt.Printf("\nTotal: %d created, %d failed\n", res.Created, res.Failed)
}

// PrintScores renders a candidate ranking for the terminal.
func PrintScores(scores []schema.AssignmentScore) {
	if len(scores) == 0 {
		fmt.Println("No active candidates.")
		return
	}
	fmt.Println()
	for i, s := range scores {
		fmt.Printf("  %d. %-20s %5.1f  (%s)\n", i+1, s.MemberName, s.OverallScore, s.Reason)
	}
	fmt.Println()
}
