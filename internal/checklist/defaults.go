package checklist

// StorageKey is the key the checklist is persisted under.
const StorageKey = "christmas_checklist"

var defaultTexts = [...]string{
	"Buy gifts for family",
	"Decorate the Christmas tree",
	"Bake Christmas cookies",
	"Wrap presents",
	"Send Christmas cards",
	"Watch Christmas movies",
	"Make hot chocolate",
	"Donate to charity",
	"Plan Christmas dinner",
	"Visit Christmas market",
}

// DefaultTasks returns a fresh copy of the seed list: ten tasks, the first checked.
func DefaultTasks() TaskList {
	tasks := make(TaskList, len(defaultTexts))
	for i, text := range defaultTexts {
		tasks[i] = Task{ID: i + 1, Text: text, Checked: i == 0}
	}
	return tasks
}
