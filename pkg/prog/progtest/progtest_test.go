package progtest

import (
	"os"
	"strings"
	"testing"
)

// Verify we don't deadlock if more output is written to stdout than can be
// buffered by a pipe.
func TestOutputCaptureDoesNotDeadlock(t *testing.T) {
	Test(t, noisyRun,
		ThatCalc().WritesStdoutContaining("hello"),
	)
}

func noisyRun(fds [3]*os.File, args []string) int {
	bytes := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	for i := 0; i < 128*1024/len(bytes); i++ {
		fds[1].Write(bytes)
	}
	fds[1].WriteString("hello")
	return 0
}

func TestRun_FeedsStdinAndCapturesOutput(t *testing.T) {
	r := Run(t, echoRun, []string{"echo", "x"}, "foo\n")
	if r.ExitStatus() != 3 {
		t.Errorf("got exit status %v, want 3", r.ExitStatus())
	}
	if r.Stdout() != "foo\n" {
		t.Errorf("got stdout %q, want %q", r.Stdout(), "foo\n")
	}
	if r.Stderr() != "echo x" {
		t.Errorf("got stderr %q, want %q", r.Stderr(), "echo x")
	}
}

func echoRun(fds [3]*os.File, args []string) int {
	buf := make([]byte, 64)
	n, _ := fds[0].Read(buf)
	fds[1].Write(buf[:n])
	fds[2].WriteString(strings.Join(args, " "))
	return 3
}

func TestOutputString(t *testing.T) {
	if got := (output{content: "a\n", partial: true}).String(); got != "text containing a" {
		t.Errorf("got %q", got)
	}
	if got := (output{content: "a\n"}).String(); got != "a\n" {
		t.Errorf("got %q", got)
	}
}
