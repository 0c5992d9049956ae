// Package uetest provides public constants for CI scripts and tools
// integrating with the uetest runner.
package uetest

// Exit codes returned by the uetest CLI.
const (
	// ExitSuccess indicates every test passed.
	ExitSuccess = 0

	// ExitFailure indicates failed tests or a run that could not finish.
	ExitFailure = 1

	// ExitConfigError indicates missing inputs, an invalid config file or a malformed test list.
	ExitConfigError = 2

	// ExitEnvError indicates an environment problem (editor binary missing, results directory not writable).
	ExitEnvError = 3
)
