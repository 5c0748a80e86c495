package model

// DayStats is derived from the loaded task set and never persisted.
type DayStats struct {
	Completed  int
	InProgress int
	NotDone    int
}

// ComputeDayStats counts tasks by status.
func ComputeDayStats(tasks []Task) DayStats {
	var out DayStats
	for _, t := range tasks {
		switch t.Status {
		case StatusDone:
			out.Completed++
		case StatusInProgress:
			out.InProgress++
		case StatusNotDone:
			out.NotDone++
		default:
			// unknown statuses never reach the store; counted as open work
			out.NotDone++
		}
	}
	return out
}

func (s DayStats) Total() int {
	return s.Completed + s.InProgress + s.NotDone
}

func (s DayStats) CompletionRatio() float64 {
	total := s.Total()
	if total == 0 {
		return 0
	}
	return float64(s.Completed) / float64(total)
}
