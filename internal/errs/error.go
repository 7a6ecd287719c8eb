package errs

import (
	"errors"
)

var (
	ErrBookNotFound = errors.New("book not found")
	ErrUserNotFound = errors.New("user not found")
	ErrLoanNotFound = errors.New("loan not found")

	ErrUserInactive       = errors.New("user is not active")
	ErrLoanLimit          = errors.New("active loan limit reached")
	ErrOutstandingOverdue = errors.New("user has overdue loans")
	ErrOutOfStock         = errors.New("no available copies")
	ErrAlreadyReturned    = errors.New("loan already returned")
	ErrForbidden          = errors.New("loan belongs to another user")
	ErrRenewOverdue       = errors.New("overdue loan cannot be renewed")

	// ErrNotificationExists signals a concurrent dispatcher already claimed
	// the (loan, type, channel) key; callers skip, not fail.
	ErrNotificationExists = errors.New("notification already recorded")
)
