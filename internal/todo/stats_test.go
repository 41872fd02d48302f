package todo

import "testing"

func TestComputeStats(t *testing.T) {
	s := State{Tasks: []Task{
		{Status: StatusCompleted},
		{Status: StatusPending},
		{Status: StatusInProgress},
	}}

	st := ComputeStats(s)
	if st.Total != 3 || st.Pending != 1 || st.InProgress != 1 || st.Completed != 1 {
		t.Errorf("stats = %+v", st)
	}
	if st.CompletionPercentage != 33 {
		t.Errorf("CompletionPercentage = %d, want 33", st.CompletionPercentage)
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	st := ComputeStats(State{})
	if st.Total != 0 {
		t.Errorf("Total = %d, want 0", st.Total)
	}
	if st.CompletionPercentage != 0 {
		t.Errorf("CompletionPercentage = %d, want 0 (no division by zero)", st.CompletionPercentage)
	}
}

func TestComputeStatsRounding(t *testing.T) {
	cases := []struct {
		completed, total int
		want             int
	}{
		{1, 3, 33},
		{2, 3, 67},
		{1, 2, 50},
		{3, 3, 100},
		{0, 5, 0},
	}

	for _, tc := range cases {
		tasks := make([]Task, 0, tc.total)
		for i := 0; i < tc.completed; i++ {
			tasks = append(tasks, Task{Status: StatusCompleted})
		}
		for i := tc.completed; i < tc.total; i++ {
			tasks = append(tasks, Task{Status: StatusPending})
		}
		st := ComputeStats(State{Tasks: tasks})
		if st.CompletionPercentage != tc.want {
			t.Errorf("%d/%d = %d, want %d", tc.completed, tc.total, st.CompletionPercentage, tc.want)
		}
	}
}
