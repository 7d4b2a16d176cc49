package domain

import "fmt"

// ClassificationError reports a failed or timed-out classification call.
// The router maps it to CategoryOther and keeps going.
type ClassificationError struct {
	Err error
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("classification failed: %v", e.Err)
}

func (e *ClassificationError) Unwrap() error { return e.Err }

// HandlerError reports a failure inside an invoked handler. It is caught at
// the dispatch boundary and converted into a category-prefixed error string.
type HandlerError struct {
	Category Category
	Err      error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("handler %s failed: %v", e.Category, e.Err)
}

func (e *HandlerError) Unwrap() error { return e.Err }

// PersistenceError reports a failed session read or write. This is the one
// fatal condition in the core: the run must fail loudly rather than proceed
// with stale or empty session state.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("session store %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
