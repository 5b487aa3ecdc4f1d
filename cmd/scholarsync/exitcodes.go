package main

// Exit codes
const (
	ExitSuccess     = 0 // Success, including runs that skipped some publications
	ExitError       = 1 // General error (invalid arguments, write failure)
	ExitConfigError = 2 // Configuration error (bad config file, unknown provider)
	ExitFetchError  = 3 // Profile could not be fetched or parsed; outputs untouched
)
