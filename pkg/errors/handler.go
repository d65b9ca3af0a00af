package errors

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"
)

var (
	handlerMu sync.RWMutex
	handler   ErrorHandler = &LogHandler{}
)

// SetHandler installs the handler that receives reported errors and
// recovered panics. Passing nil restores a non-verbose LogHandler on stderr.
func SetHandler(h ErrorHandler) {
	if h == nil {
		h = &LogHandler{}
	}
	handlerMu.Lock()
	handler = h
	handlerMu.Unlock()
}

// Handler returns the installed handler.
func Handler() ErrorHandler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return handler
}

// Report stamps err with the current time, if unset, and hands it to the
// installed handler.
func Report(err *TreeError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	Handler().HandleError(err)
}

// ReportPanic hands a recovered panic to the installed handler.
func ReportPanic(err *PanicError) {
	if err != nil {
		Handler().HandlePanic(err)
	}
}

// Recover reports a panic in progress. It must be deferred directly:
//
//	defer errors.Recover("tree.Hierarchy.Update")
func Recover(op string) {
	if r := recover(); r != nil {
		ReportPanic(newPanic(op, r))
	}
}

// RecoverWithCallback is Recover that also passes the reported panic to fn,
// letting the caller keep it after the stack unwinds.
func RecoverWithCallback(op string, fn func(*PanicError)) {
	if r := recover(); r != nil {
		p := newPanic(op, r)
		ReportPanic(p)
		if fn != nil {
			fn(p)
		}
	}
}

// FromPanic converts a recovered panic into a KindPanic TreeError so it can
// travel through ordinary error returns.
func FromPanic(p *PanicError) *TreeError {
	return &TreeError{
		Op:         p.Op,
		Kind:       KindPanic,
		Err:        fmt.Errorf("%w", p),
		StackTrace: p.StackTrace,
		Timestamp:  p.Timestamp,
	}
}

func newPanic(op string, r any) *PanicError {
	// Skip newPanic, the Recover variant and the runtime's panic frame.
	return &PanicError{
		Op:         op,
		Value:      r,
		StackTrace: stackFrom(4),
		Timestamp:  time.Now(),
	}
}

// CaptureStack returns the caller's stack, one "function\n\tfile:line" entry
// per frame.
func CaptureStack() string {
	return stackFrom(3)
}

func stackFrom(skip int) string {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(skip, pcs)
	if n == 0 {
		return ""
	}
	var sb strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for {
		f, more := frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", f.Function, f.File, f.Line)
		if !more {
			return sb.String()
		}
	}
}
