package kernel

import "errors"

// Configuration defects. New returns these joined together.
var (
	ErrNoTasks           = errors.New("no tasks configured")
	ErrTooManyTasks      = errors.New("too many tasks")
	ErrInvalidPriority   = errors.New("invalid task priority")
	ErrDuplicateTask     = errors.New("duplicate task name")
	ErrDuplicateIRQ      = errors.New("interrupt bound to more than one task")
	ErrNilTask           = errors.New("task has no body")
	ErrUnknownResource   = errors.New("unknown resource")
	ErrDuplicateResource = errors.New("duplicate resource name")
	ErrResourceBound     = errors.New("resource already bound to a kernel")
	ErrCeilingTooLow     = errors.New("resource ceiling below accessing task priority")
)

// Lifecycle errors.
var (
	ErrNotStarted     = errors.New("kernel not started")
	ErrAlreadyStarted = errors.New("kernel already started")
	ErrHalted         = errors.New("core halted")
)

// Runtime defects. These are raised with panic and are never recovered by
// the kernel.
var (
	ErrResourceBusy     = errors.New("resource already claimed")
	ErrUndeclaredAccess = errors.New("resource not in task access list")
	ErrBelowCeiling     = errors.New("direct access below resource ceiling")
)
