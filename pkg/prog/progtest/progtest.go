// Package progtest contains utilities for testing the calculator program.
package progtest

import (
	"io"
	"os"
	"strings"
	"testing"
)

// Case is a test case that can be used in Test.
type Case struct {
	args  []string
	stdin string
	want  result
}

type result struct {
	exitStatus int
	stdout     output
	stderr     output
}

type output struct {
	content string
	partial bool
}

func (o output) String() string {
	if o.partial {
		return "text containing " + strings.TrimSuffix(o.content, "\n")
	}
	return o.content
}

// ThatCalc returns a new Case with the specified CLI arguments.
//
// The new Case runs the program with no input, and expects it to exit with 0
// and write nothing to stdout or stderr.
//
// When combined with subsequent method calls, a test case reads like English.
// For example, a test for the fact that "calc -bad-flag" exits with 2 is
// written as:
//
//	ThatCalc("-bad-flag").ExitsWith(2)
func ThatCalc(args ...string) Case {
	return Case{args: append([]string{"calc"}, args...)}
}

// WithStdin returns an altered Case that feeds the given text to stdin.
func (c Case) WithStdin(s string) Case {
	c.stdin = s
	return c
}

// DoesNothing returns c itself. It is useful to mark tests that otherwise
// don't have any expectations, for example:
//
//	ThatCalc("-log", "x").DoesNothing()
func (c Case) DoesNothing() Case { return c }

// ExitsWith returns an altered Case that requires the program to return with
// the given exit status.
func (c Case) ExitsWith(code int) Case {
	c.want.exitStatus = code
	return c
}

// WritesStdout returns an altered Case that requires the program to write
// exactly the given text to stdout.
func (c Case) WritesStdout(s string) Case {
	c.want.stdout = output{content: s}
	return c
}

// WritesStdoutContaining returns an altered Case that requires the program to
// write output to stdout that contains the given text as a substring.
func (c Case) WritesStdoutContaining(s string) Case {
	c.want.stdout = output{content: s, partial: true}
	return c
}

// WritesStderr returns an altered Case that requires the program to write
// exactly the given text to stderr.
func (c Case) WritesStderr(s string) Case {
	c.want.stderr = output{content: s}
	return c
}

// WritesStderrContaining returns an altered Case that requires the program to
// write output to stderr that contains the given text as a substring.
func (c Case) WritesStderrContaining(s string) Case {
	c.want.stderr = output{content: s, partial: true}
	return c
}

// Test runs test cases against the given run function, usually prog.Run.
func Test(t *testing.T, run func([3]*os.File, []string) int, cases ...Case) {
	t.Helper()
	for _, c := range cases {
		t.Run(strings.Join(c.args, " "), func(t *testing.T) {
			t.Helper()
			r := Run(t, run, c.args, c.stdin)
			if r.exitStatus != c.want.exitStatus {
				t.Errorf("got exit status %v, want %v", r.exitStatus, c.want.exitStatus)
			}
			if !matchOutput(r.stdout, c.want.stdout) {
				t.Errorf("got stdout %q, want %v", r.stdout, c.want.stdout)
			}
			if !matchOutput(r.stderr, c.want.stderr) {
				t.Errorf("got stderr %q, want %v", r.stderr, c.want.stderr)
			}
		})
	}
}

// Result is the outcome of Run.
type Result struct {
	exitStatus     int
	stdout, stderr string
}

// ExitStatus returns the exit status of the program.
func (r Result) ExitStatus() int { return r.exitStatus }

// Stdout returns what the program wrote to stdout.
func (r Result) Stdout() string { return r.stdout }

// Stderr returns what the program wrote to stderr.
func (r Result) Stderr() string { return r.stderr }

// Run runs the program with the given arguments, feeding it stdin through a
// pipe and capturing its stdout and stderr.
func Run(t *testing.T, run func([3]*os.File, []string) int, args []string, stdin string) Result {
	t.Helper()
	r0, w0 := pipe(t)
	r1, w1 := pipe(t)
	r2, w2 := pipe(t)

	go func() {
		io.WriteString(w0, stdin)
		w0.Close()
	}()
	outCh := readAllAsync(r1)
	errCh := readAllAsync(r2)

	exit := run([3]*os.File{r0, w1, w2}, args)
	w1.Close()
	w2.Close()
	return Result{exit, <-outCh, <-errCh}
}

func matchOutput(got string, want output) bool {
	if want.partial {
		return strings.Contains(got, want.content)
	}
	return got == want.content
}

func pipe(t *testing.T) (*os.File, *os.File) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		r.Close()
		w.Close()
	})
	return r, w
}

// Reads from r until EOF, so that the program never blocks on a full pipe.
func readAllAsync(r io.Reader) <-chan string {
	ch := make(chan string, 1)
	go func() {
		b, _ := io.ReadAll(r)
		ch <- string(b)
	}()
	return ch
}
