package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/dmitrijs2005/roomsync/internal/common"
	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	err      error

	calls []string
}

func (f *fakeExec) record(name string) error {
	f.calls = append(f.calls, name)
	return f.err
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) SignIn(context.Context) error {
	f.loggedIn = true
	return f.record("signin")
}
func (f *fakeExec) SignUp(context.Context) error { return f.record("signup") }
func (f *fakeExec) Demo(context.Context) error   { return f.record("demo") }
func (f *fakeExec) SignOut(context.Context) error {
	f.loggedIn = false
	return f.record("signout")
}
func (f *fakeExec) Status(context.Context) error          { return f.record("status") }
func (f *fakeExec) ShowMode(context.Context) error        { return f.record("mode") }
func (f *fakeExec) Recheck(context.Context) error         { return f.record("recheck") }
func (f *fakeExec) CompleteProfile(context.Context) error { return f.record("complete") }
func (f *fakeExec) Profile(context.Context) error         { return f.record("profile") }
func (f *fakeExec) EditProfile(context.Context) error     { return f.record("editprofile") }
func (f *fakeExec) Favorite(_ context.Context, id string) error {
	return f.record("fav:" + id)
}
func (f *fakeExec) View(_ context.Context, id string) error {
	return f.record("view:" + id)
}
func (f *fakeExec) Favorites(context.Context) error { return f.record("favorites") }
func (f *fakeExec) Viewed(context.Context) error    { return f.record("viewed") }
func (f *fakeExec) Sync(context.Context) error      { return f.record("sync") }

func capturePrint(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func runLines(exec execIface, lines ...string) {
	r := bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	runREPL(context.Background(), exec, func() string { return "status" }, r)
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	capturePrint(t)

	exec := &fakeExec{}
	runLines(exec,
		"help",
		"signin",
		"",
		"fav r1",
		"view r2",
		"favorites",
		"viewed",
		"complete",
		"profile",
		"editprofile",
		"status",
		"mode",
		"recheck",
		"sync",
		"signout",
		"demo",
		"signup",
		"exit",
		"status",
	)

	assert.Equal(t, []string{
		"signin", "fav:r1", "view:r2", "favorites", "viewed", "complete",
		"profile", "editprofile", "status", "mode", "recheck", "sync",
		"signout", "demo", "signup",
	}, exec.calls)
}

func TestRunREPL_UsageUnknownAndQuit(t *testing.T) {
	out := capturePrint(t)

	exec := &fakeExec{loggedIn: true}
	runLines(exec, "fav", "view a b", "foobar", "quit")

	assert.Empty(t, exec.calls)
	joined := strings.Join(*out, "\n")
	assert.Contains(t, joined, "Usage: fav <room id>")
	assert.Contains(t, joined, "Usage: view <room id>")
	assert.Contains(t, joined, "Unknown command: foobar")
	assert.Contains(t, joined, "Bye!")
}

func TestRunREPL_RendersUserMessage(t *testing.T) {
	out := capturePrint(t)

	exec := &fakeExec{err: fmt.Errorf("sign in: %w", common.ErrWrongPassword)}
	runLines(exec, "signin")

	assert.Contains(t, *out, "Error: Wrong password")
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	capturePrint(t)

	exec := &fakeExec{}
	runLines(exec, "status", "mode")

	assert.Equal(t, []string{"status", "mode"}, exec.calls)
}

func TestRunREPL_HelpDependsOnLogin(t *testing.T) {
	out := capturePrint(t)

	runLines(&fakeExec{}, "help")
	runLines(&fakeExec{loggedIn: true}, "help")

	joined := strings.Join(*out, "\n")
	assert.Contains(t, joined, "signin, signup, demo")
	assert.Contains(t, joined, "fav <id>")
}
