package lumen

import (
	"fmt"
	"os"
)

// Debug enables layout tracing for nodes with a debug label via the
// LUMEN_DEBUG_LAYOUT env var.
var Debug = os.Getenv("LUMEN_DEBUG_LAYOUT") != ""

func debugf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "lumen: "+format+"\n", args...)
}
