// Package prog provides the entry point of the calculator program.
package prog

// This package parses flags, loads the configuration, opens the history store
// and then runs a line-oriented read-eval-print loop over a calc.Session.

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"src.calc.sh/pkg/calc"
	"src.calc.sh/pkg/config"
	"src.calc.sh/pkg/history"
	"src.calc.sh/pkg/logutil"
	"src.calc.sh/pkg/store"
	"src.calc.sh/pkg/store/storedefs"
)

var logger = logutil.GetLogger("[prog] ")

// Value of the -history flag that disables persistence.
const historyNone = "none"

// Flags keeps command-line flags.
type Flags struct {
	Config, DB, History, Log string

	Help, WriteConfig bool
}

func newFlagSet(f *Flags) *flag.FlagSet {
	fs := flag.NewFlagSet("calc", flag.ContinueOnError)
	// Error and usage will be printed explicitly.
	fs.SetOutput(io.Discard)

	fs.StringVar(&f.Config, "config", "", "path to the configuration file")
	fs.StringVar(&f.DB, "db", "", "path to the history database")
	fs.StringVar(&f.History, "history", "",
		"history backend: bolt, sqlite, memory or none")
	fs.StringVar(&f.Log, "log", "", "a file to write debug log to")

	fs.BoolVar(&f.Help, "help", false, "show usage help and quit")
	fs.BoolVar(&f.WriteConfig, "write-config", false,
		"write the effective configuration to the configuration file and quit")

	return fs
}

func usage(out io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(out, "Usage: calc [flags]")
	fmt.Fprintln(out, "Supported flags:")
	fs.SetOutput(out)
	fs.PrintDefaults()
}

// Run parses command-line flags and runs the calculator. It returns the exit
// status of the program.
func Run(fds [3]*os.File, args []string) int {
	f := &Flags{}
	fs := newFlagSet(f)
	err := fs.Parse(args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			// Parse returns ErrHelp for -h, which is not defined.
			fmt.Fprintln(fds[2], "flag provided but not defined: -h")
		} else {
			fmt.Fprintln(fds[2], err)
		}
		usage(fds[2], fs)
		return 2
	}

	if f.Log != "" {
		err = logutil.SetOutputFile(f.Log)
		if err != nil {
			fmt.Fprintln(fds[2], err)
		}
	}

	if f.Help {
		usage(fds[1], fs)
		return 0
	}

	err = run(fds, f, fs.Args())
	if err == nil {
		return 0
	}
	fmt.Fprintln(fds[2], err)
	var bu badUsageError
	if errors.As(err, &bu) {
		usage(fds[2], fs)
	}
	return 2
}

// BadUsage returns an error that causes Run to print the message and the
// usage information, and exit with 2.
func BadUsage(msg string) error { return badUsageError{msg} }

type badUsageError struct{ msg string }

func (e badUsageError) Error() string { return e.msg }

func run(fds [3]*os.File, f *Flags, args []string) error {
	if len(args) > 0 {
		return BadUsage("arguments are not supported")
	}
	switch f.History {
	case "", historyNone, store.Bolt, store.SQLite, store.Memory:
	default:
		return BadUsage(fmt.Sprintf("unknown history backend %q", f.History))
	}

	cfg, cfgPath, err := loadConfig(f)
	if err != nil {
		return err
	}
	if f.WriteConfig {
		if err := config.Save(cfgPath, cfg); err != nil {
			return err
		}
		fmt.Fprintln(fds[1], "config written to", cfgPath)
		return nil
	}
	if f.Log == "" && cfg.Log.File != "" {
		if err := logutil.SetOutputFile(cfg.Log.File); err != nil {
			fmt.Fprintln(fds[2], "Warning:", err)
		}
	}

	st := openStore(fds[2], cfg.History)
	h := history.Open(st, cfg.History.Limit)
	defer func() {
		h.Close()
		if err := st.Close(); err != nil {
			logger.Println("close store:", err)
		}
	}()

	s := calc.NewSession(h,
		calc.WithPrecision(cfg.Display.Precision),
		calc.WithErrorMarker(cfg.Display.ErrorMarker))
	r := &repl{
		in:     fds[0],
		out:    fds[1],
		prompt: isTerminal(fds[0]),
		s:      s,
	}
	return r.loop()
}

// Loads the configuration file and applies the flags on top of it.
func loadConfig(f *Flags) (*config.Config, string, error) {
	dir, err := config.Dir()
	if err != nil {
		logger.Println("no config dir, using working directory:", err)
		dir = "."
	}
	path := f.Config
	if path == "" {
		path = config.DefaultPath(dir)
	}
	cfg, err := config.Load(path, dir)
	if err != nil {
		return nil, "", err
	}
	if f.DB != "" {
		cfg.History.Path = f.DB
	}
	switch f.History {
	case "":
	case historyNone:
		cfg.History.Backend = store.Memory
	default:
		cfg.History.Backend = f.History
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	logger.Printf("config loaded from %s: %+v", path, cfg)
	return cfg, path, nil
}

// Opens the history store. If the store cannot be opened, a warning is
// written to w and an in-memory store is used instead.
func openStore(w io.Writer, c config.HistoryConfig) storedefs.Store {
	if c.Backend != store.Memory {
		if err := os.MkdirAll(filepath.Dir(c.Path), 0700); err != nil {
			logger.Println("create database dir:", err)
		}
	}
	st, err := store.Open(c.Backend, c.Path)
	if err != nil {
		fmt.Fprintln(w, "Warning: cannot open history store:", err)
		fmt.Fprintln(w, "History will not be saved.")
		return store.NewMemStore()
	}
	return st
}

func isTerminal(file *os.File) bool {
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
