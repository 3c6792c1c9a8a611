package form3

import (
	"fmt"
	"runtime"
)

type shapeErr struct {
	panicObj interface{}
	stack    string
}

func (s *shapeErr) Error() string {
	return fmt.Sprintf("%s", s.panicObj)
}

// ErrMsg returns an error with a message function name and line number.
func ErrMsg(msg string) error {
	pc, _, line, ok := runtime.Caller(1)
	if !ok {
		return fmt.Errorf("?: %s", msg)
	}
	fn := runtime.FuncForPC(pc)
	return fmt.Errorf("%s line %d: %s", fn.Name(), line, msg)
}
