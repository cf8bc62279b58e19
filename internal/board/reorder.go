// Package board holds the kanban view of one sprint: issues grouped into
// status columns and ordered by their Order field, plus the reorder
// algorithm applied on drag and drop.
package board

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"syncboard/internal/model"
)

var (
	ErrInvalidColumn   = errors.New("invalid board column")
	ErrIndexOutOfRange = errors.New("board index out of range")
)

// Move describes a single drag and drop: the card at SourceIndex of
// SourceColumn lands at DestinationIndex of DestinationColumn.
type Move struct {
	SourceColumn      model.IssueStatus `json:"sourceColumn" binding:"required"`
	SourceIndex       int               `json:"sourceIndex" binding:"min=0"`
	DestinationColumn model.IssueStatus `json:"destinationColumn" binding:"required"`
	DestinationIndex  int               `json:"destinationIndex" binding:"min=0"`
}

// IsNoop reports whether the card is dropped where it was picked up.
func (m Move) IsNoop() bool {
	return m.SourceColumn == m.DestinationColumn && m.SourceIndex == m.DestinationIndex
}

// Settled returns the move describing the card at rest after m was applied.
func (m Move) Settled() Move {
	return Move{
		SourceColumn:      m.DestinationColumn,
		SourceIndex:       m.DestinationIndex,
		DestinationColumn: m.DestinationColumn,
		DestinationIndex:  m.DestinationIndex,
	}
}

func (m Move) validate() error {
	if !m.SourceColumn.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidColumn, m.SourceColumn)
	}
	if !m.DestinationColumn.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidColumn, m.DestinationColumn)
	}
	if m.SourceIndex < 0 || m.DestinationIndex < 0 {
		return ErrIndexOutOfRange
	}
	return nil
}

// Reorder applies m to issues and returns the resulting list together with
// the minimal set of {id, status, order} writes needed to persist it. The
// input slice is never modified; issues in columns not touched by the move
// keep their values and are left out of the changed set.
func Reorder(issues []model.Issue, m Move) ([]model.Issue, []model.IssueOrder, error) {
	if m.IsNoop() {
		return issues, nil, nil
	}
	if err := m.validate(); err != nil {
		return nil, nil, err
	}

	out := make([]model.Issue, len(issues))
	copy(out, issues)

	src := columnIndexes(out, m.SourceColumn)
	if m.SourceIndex >= len(src) {
		return nil, nil, fmt.Errorf("%w: source index %d, column %s has %d issues",
			ErrIndexOutOfRange, m.SourceIndex, m.SourceColumn, len(src))
	}

	moved := src[m.SourceIndex]
	src = append(src[:m.SourceIndex:m.SourceIndex], src[m.SourceIndex+1:]...)

	dst := src
	if m.SourceColumn != m.DestinationColumn {
		dst = columnIndexes(out, m.DestinationColumn)
	}

	at := m.DestinationIndex
	if at > len(dst) {
		at = len(dst)
	}
	dst = append(dst[:at:at], append([]int{moved}, dst[at:]...)...)
	out[moved].Status = m.DestinationColumn

	var changed []model.IssueOrder
	changed = renumber(out, issues, dst, changed)
	if m.SourceColumn != m.DestinationColumn {
		changed = renumber(out, issues, src, changed)
	}
	return out, changed, nil
}

// Normalize reassigns contiguous orders inside every column, keeping the
// current relative order. On a list that came out of Reorder it is a no-op.
func Normalize(issues []model.Issue) ([]model.Issue, []model.IssueOrder) {
	out := make([]model.Issue, len(issues))
	copy(out, issues)

	var changed []model.IssueOrder
	for _, status := range model.IssueStatuses {
		changed = renumber(out, issues, columnIndexes(out, status), changed)
	}
	return out, changed
}

// Merge folds changed into all, returning exactly one entry per id. When an
// id appears more than once the most recently computed entry wins: changed
// over all, and later entries of changed over earlier ones.
func Merge(all, changed []model.Issue) []model.Issue {
	latest := make(map[uuid.UUID]model.Issue, len(changed))
	for _, issue := range changed {
		latest[issue.ID] = issue
	}

	seen := make(map[uuid.UUID]bool, len(all)+len(changed))
	merged := make([]model.Issue, 0, len(all)+len(changed))
	for _, issue := range all {
		if seen[issue.ID] {
			continue
		}
		seen[issue.ID] = true
		if fresh, ok := latest[issue.ID]; ok {
			issue = fresh
		}
		merged = append(merged, issue)
	}
	for _, issue := range changed {
		if seen[issue.ID] {
			continue
		}
		seen[issue.ID] = true
		merged = append(merged, latest[issue.ID])
	}
	return merged
}

// Column returns the issues with the given status sorted by order.
func Column(issues []model.Issue, status model.IssueStatus) []model.Issue {
	idx := columnIndexes(issues, status)
	column := make([]model.Issue, len(idx))
	for i, j := range idx {
		column[i] = issues[j]
	}
	return column
}

// columnIndexes returns positions in issues of the given column, stably
// sorted by Order so ties keep their original relative order.
func columnIndexes(issues []model.Issue, status model.IssueStatus) []int {
	var idx []int
	for i := range issues {
		if issues[i].Status == status {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return issues[idx[a]].Order < issues[idx[b]].Order
	})
	return idx
}

func renumber(out, before []model.Issue, column []int, changed []model.IssueOrder) []model.IssueOrder {
	for order, i := range column {
		out[i].Order = order
		if before[i].Order != order || before[i].Status != out[i].Status {
			changed = append(changed, model.IssueOrder{
				ID:     out[i].ID,
				Status: out[i].Status,
				Order:  order,
			})
		}
	}
	return changed
}
