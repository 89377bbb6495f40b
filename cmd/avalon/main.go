// Command avalon is the CLI front-end for the semantic checker: it
// loads a source file and everything it imports, type-checks and
// cleans the result, and reports every diagnostic to the terminal.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/avalon-lang/avalon/internal/driver"
)

var (
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	fs := flag.NewFlagSet("avalon", flag.ContinueOnError)
	dumpScope := fs.Bool("dump-scope", false, "also print the loaded module table")
	watch := fs.Bool("watch", false, "interactively recheck the file on Enter")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	args := fs.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: avalon [--dump-scope] [--watch] <source-file> [args...]")
		return 2
	}
	source := args[0]
	forwarded := args[1:]

	if *watch {
		return watchLoop(source)
	}
	return compileReportRun(source, forwarded, *dumpScope)
}

// compileReportRun checks and cleans source, renders every diagnostic,
// and — only once that succeeds — attempts to invoke the entry
// function through the configured evaluator. No evaluator backend
// ships with this front-end, so a clean compile still exits nonzero
// once it reaches that step; the message distinguishes "your program
// has a bug" from "this build cannot run programs".
func compileReportRun(source string, forwarded []string, dumpScope bool) int {
	d := driver.New(nil)
	root, compileErr := d.Compile(source)

	d.Sink.Render(func(isError bool, line string) {
		if isError {
			fmt.Fprint(os.Stderr, red(line))
		} else {
			fmt.Fprint(os.Stderr, yellow(line))
		}
	})

	if dumpScope {
		d.DumpGlobalTable(os.Stdout)
	}

	if compileErr != nil || d.Sink.Failed() {
		return 1
	}
	fmt.Fprintln(os.Stderr, green("check passed"))

	if root.Entry == nil {
		return 1
	}
	if _, err := d.Eval.Run(root.Entry, forwarded); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", yellow("runtime:"), err)
		return 1
	}
	return 0
}

// watchLoop re-runs compileReportRun every time the user presses
// Enter, in the spirit of a REPL but over a single file on disk
// rather than typed expressions — useful while iterating on a program
// without leaving the terminal.
func watchLoop(source string) int {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	fmt.Fprintf(os.Stderr, "%s watching %s — press Enter to recheck, Ctrl+D to quit\n", bold("avalon"), source)
	for {
		if _, err := line.Prompt("> "); err != nil {
			fmt.Fprintln(os.Stderr)
			return 0
		}
		compileReportRun(source, nil, false)
	}
}
