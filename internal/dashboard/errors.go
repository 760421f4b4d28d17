package dashboard

import "errors"

var (
	// ErrNotFound is returned when a record does not exist in the mirror or
	// the spreadsheet service.
	ErrNotFound = errors.New("record not found")

	// ErrInsufficientPoints is returned when a reward claim exceeds the
	// contact's point balance.
	ErrInsufficientPoints = errors.New("insufficient point balance")

	// ErrRewardUnavailable is returned when the claimed reward is disabled
	// or out of inventory.
	ErrRewardUnavailable = errors.New("reward unavailable")

	// ErrAlreadyMember is returned when adding a contact that is already on
	// the team roster.
	ErrAlreadyMember = errors.New("contact is already a team member")
)
