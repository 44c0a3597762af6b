package circles

import "errors"

var (
	ErrCircleNotFound    = errors.New("circle not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrAlreadyMember     = errors.New("already a member")
	ErrMemberNotFound    = errors.New("member not found")
	ErrNotAdmin          = errors.New("not circle admin")
	ErrCannotRemoveAdmin = errors.New("cannot remove circle admin")
	ErrInvalidCircleName = errors.New("invalid circle name")
)
