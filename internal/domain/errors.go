package domain

import "errors"

var (
	// ErrInvalidLED indicates an LED id outside the driver's range
	ErrInvalidLED = errors.New("led id out of range")

	// ErrInvalidLEDCount indicates a bank with no LEDs
	ErrInvalidLEDCount = errors.New("led count must be positive")

	// ErrTooManyCycles indicates a run longer than the service allows
	ErrTooManyCycles = errors.New("too many blink cycles")

	// ErrBadArgument indicates a script passed a non-numeric LED id
	ErrBadArgument = errors.New("led id must be a non-negative number")

	// ErrEventNotFound indicates requested event doesn't exist
	ErrEventNotFound = errors.New("event not found")

	// ErrScriptCompile indicates a script with a syntax error
	ErrScriptCompile = errors.New("script does not compile")

	// ErrScriptFailed indicates a script threw an uncaught exception
	ErrScriptFailed = errors.New("script failed")

	// ErrDriverClosed indicates the LED driver was already released
	ErrDriverClosed = errors.New("led driver closed")
)
