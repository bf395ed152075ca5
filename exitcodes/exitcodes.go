// Package exitcodes defines the standard exit codes used by npu-harness.
package exitcodes

// Exit code constants used by npu-harness
// These constants define the exit codes that the application uses to
// indicate various states when it exits:
//
// * Success (0): Used when every collected outcome is PASS or SKIP
// * TestFailure (1): Used when any outcome is FAIL or ERROR
// * RuntimeErr (2): Used for runtime errors such as bad configuration or
//   unwritable report directories
const (
	Success     = 0
	TestFailure = 1
	RuntimeErr  = 2
)
