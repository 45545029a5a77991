package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	ErrMsgUserNotFound     = "user not found"
	ErrMsgInvalidDateKey   = "invalid date key"
	ErrMsgEventFetchFailed = "failed to fetch attempt events"
	ErrMsgDatabaseError    = "database error"
)

// Sentinel errors
var (
	ErrUserNotFound   = errors.New(ErrMsgUserNotFound)
	ErrInvalidDateKey = errors.New(ErrMsgInvalidDateKey)
)
