//go:build !textdebug

package buffer

// debugChecks enables invariant checks after every edit. Build with the
// textdebug tag to turn them on.
const debugChecks = false
