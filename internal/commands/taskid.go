package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrTaskIDRequired indicates no task id was provided.
var ErrTaskIDRequired = errors.New("task id required")

// ParseTaskIDs parses one or more task ids from args.
//
// Each argument is a positive integer, optionally prefixed with '#'
// (e.g. 3, #3). Commas also separate ids ("2,3").
func ParseTaskIDs(args []string) ([]int, error) {
	var ids []int
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := parseTaskID(part)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, ErrTaskIDRequired
	}
	return ids, nil
}

func parseTaskID(s string) (int, error) {
	digits := strings.TrimPrefix(s, "#")
	if !isAllDigits(digits) {
		return 0, fmt.Errorf("invalid task id: %s", s)
	}
	id, err := strconv.Atoi(digits)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task id: %s", s)
	}
	return id, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
