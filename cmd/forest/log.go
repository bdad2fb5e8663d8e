package main

import (
	"fmt"
	"io"
	"os"
)

// logOutput receives the progress messages of verbose commands.
var logOutput io.Writer = os.Stderr

/*
logger prints progress messages of the forest commands, one per line, when
the verbose flag is set, and discards them otherwise.
*/
type logger bool

func (l logger) Logf(format string, a ...interface{}) {
	if !l {
		return
	}
	fmt.Fprintf(logOutput, format+"\n", a...)
}
