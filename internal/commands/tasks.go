package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/fastygo/taskie/domain"
	"github.com/fastygo/taskie/internal/exitcode"
	"github.com/fastygo/taskie/internal/output"
	"github.com/fastygo/taskie/internal/remote"
)

func init() {
	Register(&TasksCmd{})
	Register(&AddCmd{})
	Register(&DoneCmd{})
	Register(&RmCmd{})
}

// TasksCmd lists open tasks. It is the default command.
type TasksCmd struct{}

func (c *TasksCmd) Name() string       { return "tasks" }
func (c *TasksCmd) Aliases() []string  { return []string{"list", "ls"} }
func (c *TasksCmd) Synopsis() string   { return "List open tasks" }
func (c *TasksCmd) Usage() string      { return "taskie [tasks]" }
func (c *TasksCmd) NeedsAuth() bool    { return true }
func (c *TasksCmd) NeedsNetwork() bool { return true }

func (c *TasksCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *TasksCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	res := remote.Go(ctx, env.Service.ListTasks).Await(ctx)
	if domain.IsDomainError(res.Err, domain.ErrCodeEmptyResult) {
		env.say(out, output.NoData)
		return exitcode.Success
	}
	if !res.OK() {
		return report(errOut, res.Err)
	}

	if len(res.Value) == 0 {
		env.say(out, "no open tasks")
		return exitcode.Success
	}
	output.FormatTasks(out, res.Value)
	return exitcode.Success
}

// AddCmd implements the add command.
type AddCmd struct {
	content  string
	priority int
}

func (c *AddCmd) Name() string       { return "add" }
func (c *AddCmd) Aliases() []string  { return []string{"create"} }
func (c *AddCmd) Synopsis() string   { return "Create a task" }
func (c *AddCmd) Usage() string      { return "taskie add [--content <text>] [--priority 1|2|3] <title...>" }
func (c *AddCmd) NeedsAuth() bool    { return true }
func (c *AddCmd) NeedsNetwork() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.content, "content", "", "")
	fs.StringVar(&c.content, "c", "", "")
	fs.IntVar(&c.priority, "priority", domain.PriorityLow, "")
	fs.IntVar(&c.priority, "p", domain.PriorityLow, "")
}

func (c *AddCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}
	priority := c.priority
	if priority == 0 {
		priority = domain.PriorityLow
	}

	task := domain.NewTask{Title: title, Content: c.content, Priority: priority}
	if err := task.Validate(); err != nil {
		return report(errOut, err)
	}

	res := remote.Go(ctx, func(ctx context.Context) (domain.Task, error) {
		return env.Service.AddTask(ctx, task)
	}).Await(ctx)
	if !res.OK() {
		return report(errOut, res.Err)
	}

	env.say(out, "%s", res.Value.ID)
	return exitcode.Success
}

// DoneCmd implements the done command.
type DoneCmd struct{}

func (c *DoneCmd) Name() string       { return "done" }
func (c *DoneCmd) Aliases() []string  { return []string{"complete"} }
func (c *DoneCmd) Synopsis() string   { return "Mark a task completed" }
func (c *DoneCmd) Usage() string      { return "taskie done <id>" }
func (c *DoneCmd) NeedsAuth() bool    { return true }
func (c *DoneCmd) NeedsNetwork() bool { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	id, ok := taskID(args, errOut)
	if !ok {
		return exitcode.UserError
	}

	res := remote.GoErr(ctx, func(ctx context.Context) error {
		return env.Service.CompleteTask(ctx, id)
	}).Await(ctx)
	if !res.OK() {
		return report(errOut, res.Err)
	}

	env.say(out, "ok")
	return exitcode.Success
}

// RmCmd implements the rm command. The backend cannot delete tasks, so the
// task stays on the server; the client logs a warning saying so.
type RmCmd struct{}

func (c *RmCmd) Name() string       { return "rm" }
func (c *RmCmd) Aliases() []string  { return []string{"delete"} }
func (c *RmCmd) Synopsis() string   { return "Delete a task (not supported by the backend yet)" }
func (c *RmCmd) Usage() string      { return "taskie rm <id>" }
func (c *RmCmd) NeedsAuth() bool    { return true }
func (c *RmCmd) NeedsNetwork() bool { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	id, ok := taskID(args, errOut)
	if !ok {
		return exitcode.UserError
	}

	res := remote.GoErr(ctx, func(ctx context.Context) error {
		return env.Service.DeleteTask(ctx, id)
	}).Await(ctx)
	if !res.OK() {
		return report(errOut, res.Err)
	}

	env.say(out, "ok")
	return exitcode.Success
}

func taskID(args []string, errOut io.Writer) (string, bool) {
	switch {
	case len(args) == 0 || strings.TrimSpace(args[0]) == "":
		fmt.Fprintln(errOut, "error: task id required")
		return "", false
	case len(args) > 1:
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[1])
		return "", false
	}
	return strings.TrimSpace(args[0]), true
}
