package errors

import (
	"fmt"
	"strings"
)

// multiErrCode is the ABCI code reserved for the error collections. It must
// not be claimed by any registered error instance.
const multiErrCode uint32 = 100

// MultiErr is an empty error collection. Use it as the base when combining
// errors into a single error instance.
var MultiErr = multiErr{}

// multiErr is an error collection that acts as a single error. It does not
// support named errors in order to maintain a deterministic order of the
// collected entries.
type multiErr []error

// With returns a collection extended with given error. A nil error and an
// empty collection are ignored. A non empty collection is flattened and its
// content is added instead of the collection itself.
func (me multiErr) With(err error) multiErr {
	switch e := err.(type) {
	case nil:
		return me
	case multiErr:
		if e.IsEmpty() {
			return me
		}
		return append(me, e...)
	default:
		if isNilErr(err) {
			return me
		}
		return append(me, err)
	}
}

// IsEmpty returns true if no error was collected so far.
func (me multiErr) IsEmpty() bool {
	return len(me) == 0
}

// Unpack implements the unpacker interface.
func (me multiErr) Unpack() []error {
	return me
}

// ABCICode returns the code reserved for the error collections, regardless of
// the collection content.
func (me multiErr) ABCICode() uint32 {
	return multiErrCode
}

func (me multiErr) Error() string {
	if len(me) == 1 {
		return fmt.Sprintf("1 error occurred:\n\t* %s\n\n", me[0])
	}

	points := make([]string, len(me))
	for i, err := range me {
		points[i] = fmt.Sprintf("* %s", err)
	}

	return fmt.Sprintf(
		"%d errors occurred:\n\t%s\n\n",
		len(me), strings.Join(points, "\n\t"))
}

var _ coder = (multiErr)(nil)
var _ unpacker = (multiErr)(nil)
var _ error = (multiErr)(nil)

// Append combines given errors into a single error instance. Nil errors are
// ignored and collections are flattened. Depending on the outcome, this
// function returns nil, the only collected error or a collection of those.
func Append(errs ...error) error {
	res := MultiErr
	for _, err := range errs {
		res = res.With(err)
	}
	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return res
	}
}
