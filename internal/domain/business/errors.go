package business

import "errors"

var (
	ErrBusinessNotFound = errors.New("business not found")
	ErrNotAMember       = errors.New("user is not a member of this business")
)
