// Package api
// Author: momentics <momentics@gmail.com>
//
// Element lifetime hook.

package api

// Dropper is implemented by element types that must run cleanup when a
// container destroys them. Drop is called exactly once per element the
// container itself disposes of; elements handed back to the caller are
// the caller's responsibility.
type Dropper interface {
	Drop()
}
