// Command ccli-shell-demo wires up a small command set on top of the
// editor: help, history, alias management, and a "!" command that runs
// a cooked-mode child process through a pty, demonstrating
// ConsoleRelease/ConsoleAcquire around work that needs the terminal
// back in its normal mode.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"

	"github.com/creack/pty"

	"github.com/lmarchenko/ccli"
)

func main() {
	fmt.Println(`# ccli shell demo
# - standard navigation and editing commands
# - history browsing (Up/Down, Ctrl-R) and a "history" command
# - "alias" to define and list shorthand commands
# - "!" to drop into an interactive child shell
# - "quit" to exit
`)

	e := ccli.New(
		ccli.WithHistorySize(500),
		ccli.WithChainDelimiter(";"),
	)
	defer e.Close()

	reg := e.Registry()
	reg.Register("help", cmdHelp, nil, nil)
	reg.Register("history", cmdHistory, nil, e)
	reg.Register("alias", cmdAlias, nil, e)
	reg.Register("!", cmdShell, nil, e)
	reg.Register("quit", cmdQuit, nil, nil)

	if err := e.Run("ccli> "); err != nil {
		log.Fatal(err)
	}
}

func cmdHelp(name, line string, data interface{}, args []string) (int, error) {
	fmt.Println("commands: help, history, alias <name> <expansion>, !, quit")
	return 0, nil
}

func cmdHistory(name, line string, data interface{}, args []string) (int, error) {
	e := data.(*ccli.Editor)
	h := e.History()
	for i := h.Size(); i >= 1; i-- {
		if entry, ok := h.At(i); ok {
			fmt.Printf("%5d  %s\n", h.Size()-i+1, entry)
		}
	}
	return 0, nil
}

func cmdAlias(name, line string, data interface{}, args []string) (int, error) {
	e := data.(*ccli.Editor)
	reg := e.Registry()
	if len(args) == 1 {
		for _, a := range reg.Aliases() {
			fmt.Printf("%s='%s'\n", a.Name, a.Expansion)
		}
		return 0, nil
	}
	if len(args) < 3 {
		fmt.Println("usage: alias <name> <expansion...>")
		return 0, nil
	}
	reg.RegisterAlias(args[1], ccli.QuoteArgs(args[2:]))
	return 0, nil
}

func cmdShell(name, line string, data interface{}, args []string) (int, error) {
	e := data.(*ccli.Editor)

	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}
	cmd := exec.Command(shell)

	if err := e.ConsoleRelease(); err != nil {
		return 0, err
	}
	defer e.ConsoleAcquire()

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return 0, err
	}
	defer ptmx.Close()

	go io.Copy(ptmx, os.Stdin)
	io.Copy(os.Stdout, ptmx)

	_ = cmd.Wait()
	return 0, nil
}

func cmdQuit(name, line string, data interface{}, args []string) (int, error) {
	return 1, nil
}
