//go:build !windows

package process

import "syscall"

// KillProcessGroup sends SIGKILL to the process group led by pid, so
// Chrome's renderer and GPU helpers exit with the browser.
func KillProcessGroup(pid int) {
	// launcher.Kill already ran; a missing group is not an error here
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
