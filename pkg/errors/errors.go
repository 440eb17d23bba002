package whispr_errors

import "errors"

// Common errors
var (
	ErrInvalidPayload   = errors.New("invalid request payload")
	ErrUnauthenticated  = errors.New("unauthorized")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrTargetNotFound   = errors.New("this person does not exist")
	ErrSenderNotFound   = errors.New("sender not found")
	ErrSelfRequest      = errors.New("you cannot add yourself as a friend")
	ErrDuplicateRequest = errors.New("already added this user")
	ErrAlreadyFriends   = errors.New("already friends with this user")
	ErrDispatchFailed   = errors.New("failed to send message")
)
