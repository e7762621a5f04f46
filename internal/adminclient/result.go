// Package adminclient is a UI-framework-independent client for the
// admin moderation API: an HTTP client plus one explicit state machine
// per dashboard screen.
package adminclient

import "fmt"

// Result is the tagged outcome of a client call. Callers branch on OK
// instead of substring-matching message text, which used to misstyle
// any success message that happened to contain the word "error".
type Result struct {
	OK      bool
	Message string
	Err     string
}

func okResult(message string) Result {
	return Result{OK: true, Message: message}
}

// fetchFailure wraps a transport-level failure: the request never
// produced a usable envelope.
func fetchFailure(err error) Result {
	return Result{Err: fmt.Sprintf("Fetch error: %s", err)}
}

// serverFailure wraps a success=false envelope; the server's error
// string is shown verbatim.
func serverFailure(errText string) Result {
	return Result{Err: fmt.Sprintf("Error: %s", errText)}
}

// blocked marks a client-side precondition failure; no request was
// issued.
func blocked(msg string) Result {
	return Result{Err: msg}
}
