package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

var errEmptyScript = errors.New("script has no steps")

// script is a scripted session, convenient for recording the animations:
//
//	steps:
//	  - do: notify Welcome
//	  - after: 150ms
//	    do: notify Replaced before it settled
//	  - after: 6s
//	    do: quit
type script struct {
	Steps []step `yaml:"steps"`
}

type step struct {
	After time.Duration `yaml:"after"`
	Do    string        `yaml:"do"`
}

func loadScript(path string) (*script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer f.Close()
	return parseScript(f)
}

func parseScript(r io.Reader) (*script, error) {
	var s script
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, errEmptyScript
	}
	for i, st := range s.Steps {
		if _, err := parseCommand(st.Do); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
	}
	return &s, nil
}

// play runs the steps in order, waiting each step's delay first.
func (s *script) play(ctx context.Context, handle func(command) error) error {
	for _, st := range s.Steps {
		if st.After > 0 {
			t := time.NewTimer(st.After)
			select {
			case <-ctx.Done():
				t.Stop()
				return nil
			case <-t.C:
			}
		}
		c, err := parseCommand(st.Do)
		if err != nil {
			return err
		}
		if c.kind == cmdQuit {
			return nil
		}
		if err := handle(c); err != nil {
			return err
		}
	}
	return nil
}
