//go:build !windows

package cli

// EnableANSI is a no-op: unix terminals understand ANSI sequences.
func EnableANSI() {}
