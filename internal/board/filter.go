package board

import (
	"strings"

	"syncboard/internal/model"
)

// Filter keeps the issues matching every criterion set in f: a case
// insensitive title substring, one of the assignees, and the priority.
// Orders are left as they are.
func Filter(issues []model.Issue, f model.IssueFilter) []model.Issue {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	filtered := make([]model.Issue, 0, len(issues))
	for _, issue := range issues {
		if search != "" && !strings.Contains(strings.ToLower(issue.Title), search) {
			continue
		}
		if f.Priority != "" && issue.Priority != f.Priority {
			continue
		}
		if len(f.AssigneeIDs) > 0 && !assignedToAny(issue, f) {
			continue
		}
		filtered = append(filtered, issue)
	}
	return filtered
}

func assignedToAny(issue model.Issue, f model.IssueFilter) bool {
	if issue.AssigneeID == nil {
		return false
	}
	for _, id := range f.AssigneeIDs {
		if *issue.AssigneeID == id {
			return true
		}
	}
	return false
}
