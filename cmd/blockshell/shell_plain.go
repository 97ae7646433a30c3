package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
)

// sessionCompleter adapts session.complete to readline's completion hook.
type sessionCompleter struct{ sess *session }

// Do returns the text to insert after the cursor and how many runes of the
// current word are already typed.
func (c sessionCompleter) Do(line []rune, pos int) ([][]rune, int) {
	typed := string(line[:pos])
	full := c.sess.complete(typed)
	if full == "" || !strings.HasPrefix(full, typed) {
		return nil, 0
	}
	word := typed[strings.LastIndex(typed, " ")+1:]
	return [][]rune{[]rune(full[len(typed):])}, len([]rune(word))
}

// runPlainShell runs the shell as a line-oriented prompt. Output scrolls in
// the terminal and history persists under the config directory.
func runPlainShell(sess *session) error {
	var historyFile string
	if dir, err := resolveConfigDir(); err == nil {
		if err := os.MkdirAll(dir, 0o755); err == nil {
			historyFile = filepath.Join(dir, "shell_history")
		}
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     historyFile,
		AutoComplete:    sessionCompleter{sess: sess},
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("starting prompt: %w", err)
	}
	defer rl.Close()

	fmt.Fprintf(rl.Stdout(), "palette: %s\n", strings.Join(sess.reg.Names(), ", "))
	return plainLoop(rl.Readline, rl.Stdout(), rl.Stderr(), sess)
}

// plainLoop reads lines until exit, EOF or an interrupt on an empty line.
func plainLoop(readLine func() (string, error), stdout, stderr io.Writer, sess *session) error {
	for {
		line, err := readLine()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "exit" {
			return nil
		}
		out, err := sess.exec(line)
		if err != nil {
			fmt.Fprintln(stderr, "error:", err)
			continue
		}
		if out != "" {
			fmt.Fprintln(stdout, out)
		}
	}
}
