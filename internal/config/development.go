package config

import "os"

// Development reports whether the process runs in development mode.
// MINES_DEVELOPMENT wins over the DEVELOPMENT variable shared with the
// other tools; any value except "0" turns it on.
func Development() bool {
	for _, key := range []string{"MINES_DEVELOPMENT", "DEVELOPMENT"} {
		if development, ok := os.LookupEnv(key); ok {
			return development != "0"
		}
	}
	return false
}
