package core

import "fmt"

// InvariantViolation reports a broken simulation invariant. It signals a bug,
// never a runtime condition, and is raised with panic.
type InvariantViolation struct {
	Op     string
	Detail string
}

func (e InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violated in %s: %s", e.Op, e.Detail)
}

// Violate panics with an InvariantViolation.
func Violate(op, format string, args ...any) {
	panic(InvariantViolation{Op: op, Detail: fmt.Sprintf(format, args...)})
}
