//go:build !linux

package sandbox

import "fmt"

// Enter is unimplemented outside Linux: the launcher relies on Linux-only
// namespace, mount and chroot primitives that have no portable equivalent.
func Enter(opts Options) error {
	return fail(StepValidation, fmt.Errorf("sandbox launcher is only supported on linux"))
}
