package services

import (
	"errors"
	"fmt"
)

// Error classes the transport layer maps to status codes.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrConflict        = errors.New("conflict")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
)

var (
	ErrSelfRequest      = fmt.Errorf("%w: cannot send a friend request to yourself", ErrInvalidArgument)
	ErrMissingUser      = fmt.Errorf("%w: user id is required", ErrInvalidArgument)
	ErrMissingRelation  = fmt.Errorf("%w: relation id is required", ErrInvalidArgument)
	ErrAlreadyFriends   = fmt.Errorf("%w: users are already friends", ErrConflict)
	ErrRequestExists    = fmt.Errorf("%w: friend request already sent", ErrConflict)
	ErrAlreadyAccepted  = fmt.Errorf("%w: friend request already accepted", ErrConflict)
	ErrNotRequestTarget = fmt.Errorf("%w: only the recipient can answer a friend request", ErrForbidden)
	ErrRelationNotFound = fmt.Errorf("%w: relation not found", ErrNotFound)
	ErrRequestNotFound  = fmt.Errorf("%w: request not found", ErrNotFound)
)
