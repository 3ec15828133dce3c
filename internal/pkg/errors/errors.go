package errors

import "errors"

// Custom application errors
var (
	ErrInvalidTimeFormat  = errors.New("invalid time format, expected HH:MM")         // Bad "HH:MM" input
	ErrInvalidRepeatToken = errors.New("invalid repeat interval, expected 1h to 10h") // Repeat token outside the allowed set
	ErrInvalidIndex       = errors.New("invalid reminder number")                     // complete index out of range or not a number
	ErrReminderNotFound   = errors.New("reminder not found")                          // Update/delete target vanished
	ErrUserNotFound       = errors.New("user not found")                              // Owner not registered
	ErrDatabaseOperation  = errors.New("database operation failed")                   // Generic persistence error
	ErrDelivery           = errors.New("message delivery failed")                     // Notifier failure
	ErrUnknownCommand     = errors.New("unknown command")                             // Inbound text is not a command
	ErrMissingArguments   = errors.New("missing command arguments")                   // Command without its required arguments
	ErrScheduling         = errors.New("scheduling failed")                           // Generic scheduling error
)
