package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	authenticated bool

	calls []string
	paths []string
}

func (f *fakeExec) isAuthenticated() bool { return f.authenticated }
func (f *fakeExec) Register(ctx context.Context) error {
	f.calls = append(f.calls, "register")
	return nil
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.authenticated = true
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.authenticated = false
	return nil
}
func (f *fakeExec) Whoami(ctx context.Context) error {
	f.calls = append(f.calls, "whoami")
	return nil
}
func (f *fakeExec) Profile(ctx context.Context) error {
	f.calls = append(f.calls, "profile")
	return nil
}
func (f *fakeExec) Go(ctx context.Context, path string) error {
	f.calls = append(f.calls, "go")
	f.paths = append(f.paths, path)
	return nil
}
func (f *fakeExec) Documents(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "docs "+strings.Join(args, " "))
	return nil
}
func (f *fakeExec) Audits(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "audits "+strings.Join(args, " "))
	return nil
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"docs list",
		"audits filter severity=HIGH",
		"go /audits",
		"whoami",
		"foobar",
		"logout",
		"exit",
	}, "\n"))

	exec := &fakeExec{authenticated: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"login", "docs list", "audits filter severity=HIGH", "go", "whoami", "logout"}
	idx := 0
	for _, c := range exec.calls {
		if idx < len(wantOrder) && c == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("commands order mismatch: got %v, want subseq %v", exec.calls, wantOrder)
	}
	if len(exec.paths) != 1 || exec.paths[0] != "/audits" {
		t.Fatalf("unexpected navigation targets: %v", exec.paths)
	}
}

func TestRunREPL_UsageAndQuit(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	// "go" without a path prints usage and dispatches nothing
	input := strings.NewReader("go\nquit\n")
	exec := &fakeExec{authenticated: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
