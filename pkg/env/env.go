// Package env keeps names of environment variables with special significance to
// rawterm.
package env

// Environment variables with special significance to rawterm.
//
// Note that some of these env vars may be significant only in special
// circumstances, such as when running unit tests.
const (
	RAWTERM_CONFIG          = "RAWTERM_CONFIG"
	RAWTERM_LOG             = "RAWTERM_LOG"
	RAWTERM_TEST_TIME_SCALE = "RAWTERM_TEST_TIME_SCALE"
)
