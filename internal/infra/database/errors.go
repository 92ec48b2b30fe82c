package database

import "errors"

// Custom errors
var (
	ErrGroupNotFound   = errors.New("group not found")
	ErrStudentNotFound = errors.New("student not found")
)
