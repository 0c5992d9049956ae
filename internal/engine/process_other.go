//go:build !unix

package engine

import "os/exec"

// setProcessGroup is a no-op where process groups are unavailable; the
// default cancellation kills only the editor and WaitDelay bounds the rest.
func setProcessGroup(*exec.Cmd) {}
