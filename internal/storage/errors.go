package storage

import "errors"

var (
	ErrNotFound          = errors.New("document not found")
	ErrNoOpenTasks       = errors.New("no active tasks found for the provided group_id")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrWeeklyHoursNotSet = errors.New("weekly hours not set")
)
