package main

// Exit codes. Command outcomes (not found, duplicate, store errors) are
// reported as text and always exit with ExitSuccess.
const (
	ExitSuccess = 0 // Success, including every handled command outcome
	ExitError   = 1 // Command-line parsing failure
)
