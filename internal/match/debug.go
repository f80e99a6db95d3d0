package match

import (
	"log"
	"os"
)

// DebugEnv switches on per-candidate tracing in the cmds when set to "1".
const DebugEnv = "HEXTRAIL_DEBUG"

// DebugLogger returns a stderr logger when DebugEnv is "1", nil otherwise.
func DebugLogger() *log.Logger {
	if os.Getenv(DebugEnv) != "1" {
		return nil
	}
	return log.New(os.Stderr, "[debug] ", log.Lmicroseconds)
}
