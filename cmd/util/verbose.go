package util

import (
	"log"
)

// Verbosef prints a message to stderr only when '-verbose' is set.
func Verbosef(format string, v ...interface{}) {
	if FlagVerbose {
		log.Printf(format, v...)
	}
}
