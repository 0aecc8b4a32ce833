package builtins

import "io"

// Context carries the host-side dependencies builtins need, currently just
// the output sink for print. Handlers that need it capture it at
// registration time.
type Context struct {
	Output io.Writer
}
