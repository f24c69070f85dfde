package commission

import "errors"

var (
	// ErrEmptyRoleTable indicates a distribution table with no entries.
	ErrEmptyRoleTable = errors.New("commission: empty role table")
	// ErrUnknownShareRole indicates an unrecognized role in the table.
	ErrUnknownShareRole = errors.New("commission: unknown share role")
	// ErrDuplicateShareRole indicates a role appearing twice in the table.
	ErrDuplicateShareRole = errors.New("commission: duplicate share role")
	// ErrNegativeSharePercent indicates a negative percentage in the table.
	ErrNegativeSharePercent = errors.New("commission: negative share percent")
	// ErrRoleTableNotHundred indicates percentages not summing to exactly 100.
	ErrRoleTableNotHundred = errors.New("commission: role table must sum to 100")
	// ErrNoApplicableRoles indicates every role was excluded from a distribution.
	ErrNoApplicableRoles = errors.New("commission: no applicable roles")
	// ErrNegativePool indicates a negative distributable pool.
	ErrNegativePool = errors.New("commission: negative pool")
	// ErrRateOutOfRange indicates an effective rate outside [0, 1].
	ErrRateOutOfRange = errors.New("commission: effective rate out of range")
	// ErrMarginOutOfRange indicates a margin outside [0, 1].
	ErrMarginOutOfRange = errors.New("commission: margin out of range")
)
