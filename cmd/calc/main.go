// The calc binary runs an interactive scientific calculator.
package main

import (
	"os"

	"src.calc.sh/pkg/prog"
)

func main() {
	os.Exit(prog.Run([3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args))
}
