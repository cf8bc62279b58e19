package repository

import "errors"

// Common repository errors
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrProjectKeyTaken = errors.New("project key already exists in organization")
	ErrSprintNotFound  = errors.New("sprint not found")
	ErrIssueNotFound   = errors.New("issue not found")
)
