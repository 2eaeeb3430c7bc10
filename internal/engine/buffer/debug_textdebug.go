//go:build textdebug

package buffer

const debugChecks = true
