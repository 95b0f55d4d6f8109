package service

import "errors"

var (
	ErrSiteNotFound   = errors.New("site not found")
	ErrNotMember      = errors.New("not a member of this site")
	ErrInvalidRepo    = errors.New("malformed repository name")
	ErrFileTooLarge   = errors.New("file exceeds size limit")
	ErrFileExists     = errors.New("file already exists")
	ErrInviteNotFound = errors.New("invitation not found")
	ErrInviteExpired  = errors.New("invitation expired")
	ErrInviteUsed     = errors.New("invitation already accepted")
	ErrNothingPending = errors.New("no pending assets to commit")
	ErrNoCalendar     = errors.New("no calendar configured for this site")
)
