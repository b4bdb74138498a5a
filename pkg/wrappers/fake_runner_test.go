package wrappers

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// fakeRunner records invocations and answers from a table keyed by command line.
type fakeRunner struct {
	calls  []string
	fail   map[string]bool
	stdout map[string]string
	onCall map[string]func()
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		fail:   map[string]bool{},
		stdout: map[string]string{},
		onCall: map[string]func(){},
	}
}

func (f *fakeRunner) Run(ctx context.Context, stdout io.Writer, name string, args ...string) error {
	line := strings.TrimSpace(name + " " + strings.Join(args, " "))
	f.calls = append(f.calls, line)
	if hook, ok := f.onCall[line]; ok {
		hook()
	}
	if f.fail[line] {
		return fmt.Errorf("exit status 1")
	}
	if out, ok := f.stdout[line]; ok && stdout != nil {
		_, err := io.WriteString(stdout, out)
		return err
	}
	return nil
}
