package prog

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"src.calc.sh/pkg/calc"
	"src.calc.sh/pkg/diag"
	"src.calc.sh/pkg/translate"
	"src.calc.sh/pkg/voice"
)

const promptText = "> "

const helpText = `Enter keys separated by spaces, such as "2 × ( 3 + 4 )" or "sin 30 )".
Commands:
  =              evaluate the expression
  del            delete the last character
  clear          clear the expression
  mc mr m+ m-    memory clear, recall, add and subtract
  history        show the history log
  clear-history  clear the history log
  recall N       replace the expression with history entry N
  say TEXT       interpret TEXT as a spoken command
  help           show this help
  quit           exit
`

// Memory keys may be typed in any case, on their own or among other keys.
var memoryKeys = map[string]string{
	"mc": translate.MemoryClear,
	"mr": translate.MemoryRecall,
	"m+": translate.MemoryAdd,
	"m-": translate.MemorySubtract,
}

type repl struct {
	in     io.Reader
	out    io.Writer
	prompt bool
	s      *calc.Session
}

// Reads lines until EOF or quit.
func (r *repl) loop() error {
	scanner := bufio.NewScanner(r.in)
	for {
		if r.prompt {
			fmt.Fprint(r.out, promptText)
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" {
			return nil
		}
		if r.command(line) {
			r.show()
		}
	}
}

// Executes one line, and reports whether the session should be shown
// afterwards.
func (r *repl) command(line string) bool {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch strings.ToLower(cmd) {
	case "=":
		r.s.Finalize()
		r.show()
		if shower, ok := r.s.Err().(diag.Shower); ok {
			fmt.Fprintln(r.out, shower.Show("  "))
		}
		return false
	case "del":
		r.s.DeleteLast()
	case "clear":
		r.s.Clear()
	case "history":
		r.showHistory()
		return false
	case "clear-history":
		r.s.ClearHistory()
		fmt.Fprintln(r.out, "history cleared")
		return false
	case "recall":
		return r.recall(arg)
	case "say":
		if !voice.Apply(r.s, arg) {
			fmt.Fprintf(r.out, "not understood: %s\n", arg)
			return false
		}
	case "help":
		fmt.Fprint(r.out, helpText)
		return false
	default:
		for _, token := range strings.Fields(line) {
			if key, ok := memoryKeys[strings.ToLower(token)]; ok {
				token = key
			}
			r.s.Append(token)
		}
	}
	return true
}

func (r *repl) recall(arg string) bool {
	i, err := strconv.Atoi(arg)
	entries := r.s.History()
	if err != nil || i < 0 || i >= len(entries) {
		fmt.Fprintf(r.out, "no history entry %q\n", arg)
		return false
	}
	r.s.InsertFromHistory(entries[i].Expression)
	return true
}

func (r *repl) show() {
	buffer := r.s.Buffer()
	if preview := r.s.PreviewText(); preview != "" {
		fmt.Fprintf(r.out, "%s = %s\n", buffer, preview)
	} else {
		fmt.Fprintln(r.out, buffer)
	}
}

func (r *repl) showHistory() {
	entries := r.s.History()
	if len(entries) == 0 {
		fmt.Fprintln(r.out, "history is empty")
		return
	}
	for i, e := range entries {
		fmt.Fprintf(r.out, "%d: %s = %s\n", i, e.Expression, e.Result)
	}
}
