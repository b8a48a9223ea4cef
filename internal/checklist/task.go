// Package checklist owns the holiday checklist: an ordered list of tasks
// persisted to key-value storage, with change notification for renderers.
package checklist

// Task is one checklist entry.
type Task struct {
	ID      int    `json:"id"`
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

// TaskList is the ordered collection of tasks. Order is display order.
type TaskList []Task

// Progress summarizes completion of a TaskList.
type Progress struct {
	Completed  int     `json:"completed"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// Band is a coarse progress bucket renderers use for colouring.
type Band string

const (
	BandLow    Band = "low"
	BandMedium Band = "medium"
	BandHigh   Band = "high"
)

// Band reports the bucket for p: below 30% is low, below 70% medium.
func (p Progress) Band() Band {
	switch {
	case p.Percentage < 30:
		return BandLow
	case p.Percentage < 70:
		return BandMedium
	default:
		return BandHigh
	}
}

// Progress computes completion for l. An empty list is 0%.
func (l TaskList) Progress() Progress {
	p := Progress{Total: len(l)}
	for _, t := range l {
		if t.Checked {
			p.Completed++
		}
	}
	if p.Total > 0 {
		p.Percentage = float64(p.Completed) / float64(p.Total) * 100
	}
	return p
}

// AllChecked reports whether l is non-empty and every task is checked.
func (l TaskList) AllChecked() bool {
	if len(l) == 0 {
		return false
	}
	for _, t := range l {
		if !t.Checked {
			return false
		}
	}
	return true
}

// Find returns the index of the task with id, or -1.
func (l TaskList) Find(id int) int {
	for i, t := range l {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// NextID returns max(ids)+1, or 1 for an empty list.
func (l TaskList) NextID() int {
	maxID := 0
	for _, t := range l {
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	return maxID + 1
}

func (l TaskList) clone() TaskList {
	if l == nil {
		return TaskList{}
	}
	out := make(TaskList, len(l))
	copy(out, l)
	return out
}
