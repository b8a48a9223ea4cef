// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"math"
	"strings"

	"checklist/internal/checklist"
)

const (
	// BarWidth is the number of cells in the progress bar.
	BarWidth = 20

	checkedMark   = "[x]"
	uncheckedMark = "[ ]"
)

// FormatTask formats a checklist line.
// Format: "{MARK} {ID:>4}  {TEXT}\n" (mark, 4-wide right-aligned id, two spaces, text)
func FormatTask(w io.Writer, task checklist.Task) {
	mark := uncheckedMark
	if task.Checked {
		mark = checkedMark
	}
	fmt.Fprintf(w, "%s %4d  %s\n", mark, task.ID, normalizeText(task.Text))
}

// FormatTasks formats every task in order.
func FormatTasks(w io.Writer, tasks checklist.TaskList) {
	for _, task := range tasks {
		FormatTask(w, task)
	}
}

// FormatProgress formats the completion summary line.
func FormatProgress(w io.Writer, p checklist.Progress) {
	fmt.Fprintf(w, "%d of %d tasks completed (%.0f%%)\n", p.Completed, p.Total, p.Percentage)
}

// FormatProgressBar draws a fixed-width bar with percentage and band.
// Format: "[######--------------]  30% medium\n"
func FormatProgressBar(w io.Writer, p checklist.Progress) {
	filled := int(math.Round(p.Percentage / 100 * BarWidth))
	if filled > BarWidth {
		filled = BarWidth
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat("#", filled) + strings.Repeat("-", BarWidth-filled)
	fmt.Fprintf(w, "[%s] %3.0f%% %s\n", bar, p.Percentage, p.Band())
}

// normalizeText normalizes a task label for display.
// - Newlines are replaced with spaces
// - Empty or whitespace-only labels become "(untitled)"
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "\n", " ")

	if strings.TrimSpace(text) == "" {
		return "(untitled)"
	}
	return text
}
