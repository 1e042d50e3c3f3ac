package util

import (
	"flag"
	"fmt"
	"log"
	"os"
)

// Warnf prints a message to stderr. Warnings never stop a program.
func Warnf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

// Warning prints err, prefixed by the optional format and arguments in v, and
// returns true. If err is nil, nothing is printed and false is returned.
func Warning(err error, v ...interface{}) bool {
	if err == nil {
		return false
	}
	Warnf("%s.", message(err, v...))
	return true
}

func Fatalf(format string, v ...interface{}) {
	log.Fatalf(format, v...)
}

// Assert quits the program if err is not nil. The optional format and
// arguments in v say what was being attempted.
func Assert(err error, v ...interface{}) {
	if err != nil {
		Fatalf("%s.", message(err, v...))
	}
}

func message(err error, v ...interface{}) string {
	if len(v) == 0 {
		return fmt.Sprintf("ERROR: %s", err)
	}
	format := v[0].(string)
	return fmt.Sprintf("%s: %s", fmt.Sprintf(format, v[1:]...), err)
}

func AssertLeastNArg(n int) {
	if flag.NArg() < n {
		flag.Usage()
	}
}

func AssertIsDir(path string) {
	info, err := os.Stat(path)
	Assert(err, "Directory '%s' is not accessible", path)
	if !info.IsDir() {
		Fatalf("'%s' is not a directory.", path)
	}
}
