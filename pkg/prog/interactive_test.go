//go:build !windows

package prog_test

import (
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/creack/pty"
	. "src.calc.sh/pkg/prog"
)

func TestInteractive_PrintsPrompt(t *testing.T) {
	inTempConfigDir(t)
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skip("pty not available:", err)
	}
	defer ptmx.Close()
	defer tty.Close()
	// Drain the echo from the terminal.
	go io.Copy(io.Discard, ptmx)

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	outCh := make(chan string, 1)
	go func() {
		b, _ := io.ReadAll(r)
		outCh <- string(b)
	}()

	exitCh := make(chan int, 1)
	go func() {
		exitCh <- Run([3]*os.File{tty, w, w}, []string{"calc", "-history", "none"})
		w.Close()
	}()
	if _, err := ptmx.WriteString("3*4\nquit\n"); err != nil {
		t.Fatal(err)
	}

	select {
	case exit := <-exitCh:
		if exit != 0 {
			t.Errorf("got exit status %v, want 0", exit)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for calc to exit")
	}
	out := <-outCh
	if want := "> 3*4 = 12\n> "; !strings.Contains(out, want) {
		t.Errorf("got output %q, want it to contain %q", out, want)
	}
}
