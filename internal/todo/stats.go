package todo

import "math"

// Stats summarizes one session's checklist.
type Stats struct {
	Total                int `json:"total"`
	Pending              int `json:"pending"`
	InProgress           int `json:"inProgress"`
	Completed            int `json:"completed"`
	CompletionPercentage int `json:"completionPercentage"`
}

// ComputeStats tallies a state's tasks. The completion percentage is 0 for
// an empty checklist rather than a division by zero.
func ComputeStats(s State) Stats {
	var st Stats
	st.Total = len(s.Tasks)

	for _, t := range s.Tasks {
		switch t.Status {
		case StatusPending:
			st.Pending++
		case StatusInProgress:
			st.InProgress++
		case StatusCompleted:
			st.Completed++
		}
	}

	if st.Total > 0 {
		st.CompletionPercentage = int(math.Round(100 * float64(st.Completed) / float64(st.Total)))
	}
	return st
}
