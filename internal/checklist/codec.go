package checklist

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var errNullList = errors.New("persisted list is null")

// Encode serializes l in the storage layout: a JSON array in display order.
func Encode(l TaskList) ([]byte, error) {
	if l == nil {
		l = TaskList{}
	}
	return json.Marshal(l)
}

// Decode parses a persisted list. A JSON null, ids below 1, duplicate ids
// and blank text are rejected.
func Decode(b []byte) (TaskList, error) {
	var l TaskList
	if err := json.Unmarshal(b, &l); err != nil {
		return nil, err
	}
	if l == nil {
		return nil, errNullList
	}

	seen := make(map[int]struct{}, len(l))
	for _, t := range l {
		if t.ID < 1 {
			return nil, fmt.Errorf("invalid task id %d", t.ID)
		}
		if strings.TrimSpace(t.Text) == "" {
			return nil, fmt.Errorf("task %d has no text", t.ID)
		}
		if _, dup := seen[t.ID]; dup {
			return nil, fmt.Errorf("duplicate task id %d", t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	return l, nil
}
