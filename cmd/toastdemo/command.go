package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

type commandKind uint8

const (
	cmdError commandKind = iota
	cmdInfo
	cmdNotify
	cmdTap
	cmdDismiss
	cmdBackground
	cmdForeground
	cmdHelp
	cmdQuit
)

const usage = `commands: error <text> | info <text> | notify <text> | tap | dismiss | bg | fg | quit
`

var (
	errUnknownCommand = errors.New("unknown command")
	errMissingText    = errors.New("missing text")
)

type command struct {
	kind commandKind
	arg  string
}

func parseCommand(line string) (command, error) {
	name, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	var c command
	switch strings.ToLower(name) {
	case "error", "e":
		c.kind = cmdError
	case "info", "i":
		c.kind = cmdInfo
	case "notify", "n":
		c.kind = cmdNotify
	case "tap":
		return command{kind: cmdTap}, nil
	case "dismiss", "swipe":
		return command{kind: cmdDismiss}, nil
	case "bg":
		return command{kind: cmdBackground}, nil
	case "fg":
		return command{kind: cmdForeground}, nil
	case "help", "?":
		return command{kind: cmdHelp}, nil
	case "quit", "exit", "q":
		return command{kind: cmdQuit}, nil
	default:
		return command{}, fmt.Errorf("%w: %q", errUnknownCommand, name)
	}
	if arg == "" {
		return command{}, fmt.Errorf("%w for %q", errMissingText, name)
	}
	c.arg = arg
	return c, nil
}

// readCommands feeds parsed lines from r to handle until quit, EOF or ctx
// cancellation. Blank lines are skipped and unparsable ones answered with
// help. Only handler and read errors stop it early.
func readCommands(ctx context.Context, r io.Reader, handle func(command) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- sc.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			if strings.TrimSpace(line) == "" {
				continue
			}
			c, err := parseCommand(line)
			if err != nil {
				if herr := handle(command{kind: cmdHelp}); herr != nil {
					return herr
				}
				continue
			}
			if c.kind == cmdQuit {
				return nil
			}
			if err := handle(c); err != nil {
				return err
			}
		}
	}
}
