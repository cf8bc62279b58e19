package service

import (
	"math"

	"syncboard/internal/model"
)

// ComputeMetrics reports a count for every status in column order and the
// rounded share of DONE issues. An empty project is 0% complete.
func ComputeMetrics(counts []model.StatusCount) model.ProjectMetrics {
	byStatus := make(map[model.IssueStatus]int64, len(counts))
	var total int64
	for _, c := range counts {
		byStatus[c.Status] += c.Count
		total += c.Count
	}

	metrics := model.ProjectMetrics{StatusCounts: make([]model.StatusCount, 0, len(model.IssueStatuses))}
	for _, status := range model.IssueStatuses {
		metrics.StatusCounts = append(metrics.StatusCounts, model.StatusCount{Status: status, Count: byStatus[status]})
	}
	if total > 0 {
		metrics.PercentageCompleted = int(math.Round(float64(byStatus[model.StatusDone]) / float64(total) * 100))
	}
	return metrics
}
