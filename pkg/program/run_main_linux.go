//go:build linux

package program

import (
	"log"
	"os"
	"os/signal"
	"syscall"
)

// relaunchIfPID1 relaunches the executable if the current process has
// PID 1, and propagates its termination status.
//
// When running as PID 1 inside a container, processes may get
// reparented to us. These can only be reaped by calling syscall.Wait4()
// with the PID set to -1, which is unsafe to do while parts of the Go
// standard library wait for individual processes. Running the actual
// program as a child process avoids this.
//
// More details: https://github.com/golang/go/pull/61261
func relaunchIfPID1(currentPID int) {
	if currentPID != 1 {
		return
	}

	executable, err := os.Executable()
	if err != nil {
		log.Fatal("Failed to obtain path of current executable: ", err)
	}
	signal.Ignore(terminationSignals...)
	childPID, _, err := syscall.StartProcess(executable, os.Args, &syscall.ProcAttr{
		Env:   os.Environ(),
		Files: []uintptr{0, 1, 2},
	})
	if err != nil {
		log.Fatal("Failed to relaunch current process: ", err)
	}

	status := reapUntil(childPID)
	if status.Signaled() {
		terminateWithSignal(currentPID, status.Signal())
	}
	os.Exit(status.ExitStatus())
}

// reapUntil reaps all terminated processes, until the process with the
// provided PID terminates.
func reapUntil(pid int) syscall.WaitStatus {
	for {
		var status syscall.WaitStatus
		waitedPID, err := syscall.Wait4(-1, &status, 0, nil)
		if err == syscall.EINTR {
			continue
		}
		if err != nil {
			log.Fatal("Failed to wait for process termination: ", err)
		}
		if waitedPID == pid {
			return status
		}
	}
}
