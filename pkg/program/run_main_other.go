//go:build !linux

package program

// relaunchIfPID1 is a no-op on operating systems other than Linux, as
// the reaping of reparented processes is only an issue in Linux
// containers.
func relaunchIfPID1(currentPID int) {}
