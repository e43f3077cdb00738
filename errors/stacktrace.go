package errors

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// stackTracer is an interface implemented by errors that carry a stack trace
// information. This interface is implemented by errors from the pkg/errors
// package.
type stackTracer interface {
	StackTrace() errors.StackTrace
}

// stackTrace returns the first stack trace information found in given error
// chain. It returns nil if no stack trace is attached.
func stackTrace(err error) errors.StackTrace {
	for {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return nil
		}
	}
}

// trimInternal removes from the stack trace all frames that belong to this
// package error creation functions and to the test runner. What is left
// should start with the frame where the error was created.
func trimInternal(st errors.StackTrace) errors.StackTrace {
	for len(st) > 0 && matchesFunc(st[0],
		// Frames of the functions that capture the stack trace.
		"github.com/tranche-io/tranche/errors.Wrap",
		"github.com/tranche-io/tranche/errors.Wrapf",
		"github.com/tranche-io/tranche/errors.(*Error).New",
		"github.com/tranche-io/tranche/errors.(*Error).Newf",
		"github.com/tranche-io/tranche/errors.WithType",
		"github.com/tranche-io/tranche/errors.Field",
		"github.com/tranche-io/tranche/errors.AppendField",
		// Runtime frames are added by defers.
		"runtime.",
		// Testing frames are added by the test main.
		"testing.",
	) {
		st = st[1:]
	}

	// Trim the outer wrappers, for example runtime.goexit and
	// testing.tRunner.
	for l := len(st) - 1; l > 0 && matchesFunc(st[l], "runtime.", "testing."); l-- {
		st = st[:l]
	}

	return st
}

func matchesFunc(f errors.Frame, prefixes ...string) bool {
	fn := funcName(f)
	for _, prefix := range prefixes {
		if strings.HasPrefix(fn, prefix) {
			return true
		}
	}
	return false
}

// funcName returns the name of this function, if known.
func funcName(f errors.Frame) string {
	// A frame represents a program counter inside of the function, so in
	// order to acquire the right information the value must be
	// decremented.
	pc := uintptr(f) - 1
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown"
	}
	return fn.Name()
}

func fileLine(f errors.Frame) (string, int) {
	// A frame represents a program counter inside of the function, so in
	// order to acquire the right information the value must be
	// decremented.
	pc := uintptr(f) - 1
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown", 0
	}
	return fn.FileLine(pc)
}

// writeSimpleFrame writes a minimized information about given frame. The full
// path of the source file is replaced with the package path.
func writeSimpleFrame(s io.Writer, f errors.Frame) {
	file, line := fileLine(f)
	chunks := strings.SplitN(file, "github.com/", 2)
	if len(chunks) == 2 {
		file = chunks[1]
	}
	fmt.Fprintf(s, " [%s:%d]", file, line)
}

// Format implements the fmt.Formatter interface.
//
//	%s  is the error message
//	%v  is the error message with a one line creation source reference
//	%+v is the error message together with the full stack trace
func (e *wrappedError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			st := stackTrace(e)
			if st != nil {
				fmt.Fprintf(s, "%+v\n%s", trimInternal(st), e.Error())
			} else {
				fmt.Fprint(s, e.Error())
			}
			return
		}
		fallthrough
	case 's':
		fmt.Fprint(s, e.Error())
		if verb == 'v' {
			if st := trimInternal(stackTrace(e)); len(st) > 0 {
				writeSimpleFrame(s, st[0])
			}
		}
	}
}
