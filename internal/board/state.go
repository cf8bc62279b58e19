package board

import (
	"github.com/google/uuid"

	"syncboard/internal/model"
)

// State is a transient, non-authoritative copy of one sprint's issues. A move
// is applied optimistically and can be rolled back to the snapshot taken just
// before it until Commit is called.
type State struct {
	SprintID uuid.UUID

	issues   []model.Issue
	snapshot []model.Issue
}

func NewState(sprintID uuid.UUID, issues []model.Issue) *State {
	return &State{SprintID: sprintID, issues: clone(issues)}
}

// Issues returns a copy of the current board issues.
func (s *State) Issues() []model.Issue {
	return clone(s.issues)
}

// Move applies m and returns the writes that persist it. A no-op move
// returns no writes and takes no snapshot.
func (s *State) Move(m Move) ([]model.IssueOrder, error) {
	next, changed, err := Reorder(s.issues, m)
	if err != nil || len(changed) == 0 {
		return nil, err
	}

	updated := make([]model.Issue, 0, len(changed))
	byID := make(map[uuid.UUID]model.Issue, len(next))
	for _, issue := range next {
		byID[issue.ID] = issue
	}
	for _, c := range changed {
		updated = append(updated, byID[c.ID])
	}

	s.snapshot = clone(s.issues)
	s.issues = Merge(s.issues, updated)
	return changed, nil
}

// Commit drops the pre-move snapshot once the server accepted the writes.
func (s *State) Commit() {
	s.snapshot = nil
}

// Rollback restores the board to its state before the last uncommitted move.
// It reports false when there is nothing to restore.
func (s *State) Rollback() bool {
	if s.snapshot == nil {
		return false
	}
	s.issues = s.snapshot
	s.snapshot = nil
	return true
}

func clone(issues []model.Issue) []model.Issue {
	out := make([]model.Issue, len(issues))
	copy(out, issues)
	return out
}
