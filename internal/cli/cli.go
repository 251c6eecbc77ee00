// Package cli implements the taskflow command-line front-end.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/yukikurage/taskflow-api/internal/client"
	"github.com/yukikurage/taskflow-api/internal/config"
	"github.com/yukikurage/taskflow-api/internal/constants"
	"github.com/yukikurage/taskflow-api/internal/dto"
)

// Process exit codes
const (
	ExitOK      = 0
	ExitFailure = 1
)

const usageTemplate = `Usage:
  taskflow list [--assignee ASSIGNEE] [--status STATUS] [--category CATEGORY]
  taskflow create TITLE [--assignee ASSIGNEE] [--description DESC] [--status STATUS] [--priority PRIORITY] [--category CATEGORY] [--created-by USER]
  taskflow update TASK_ID [--status STATUS] [--assignee ASSIGNEE] [--priority PRIORITY] [--title TITLE] [--description DESC] [--category CATEGORY]
  taskflow delete TASK_ID
  taskflow stats

Statuses:   %s
Priorities: %s
Categories: %s
`

var usage = fmt.Sprintf(usageTemplate,
	strings.Join(constants.KnownStatuses, ", "),
	strings.Join(constants.KnownPriorities, ", "),
	strings.Join(constants.KnownCategories, ", "),
)

// App runs commands against a TaskFlow server.
type App struct {
	client *client.Client
	stdout io.Writer
	stderr io.Writer
}

func NewApp(c *client.Client, stdout, stderr io.Writer) *App {
	return &App{client: c, stdout: stdout, stderr: stderr}
}

// Run executes args (without the program name) against the server named by
// TASKFLOW_API_URL and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	return NewApp(client.New(config.ClientAPIURL(), nil), stdout, stderr).Run(ctx, args)
}

// usageError aborts a command before any request is made.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usageErrorf(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

func (a *App) Run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(a.stderr, usage)
		return ExitFailure
	}

	var err error
	switch args[0] {
	case "list":
		err = a.list(ctx, args[1:])
	case "create":
		err = a.create(ctx, args[1:])
	case "update":
		err = a.update(ctx, args[1:])
	case "delete":
		err = a.delete(ctx, args[1:])
	case "stats":
		err = a.stats(ctx, args[1:])
	case "help", "-h", "--help":
		fmt.Fprint(a.stdout, usage)
		return ExitOK
	default:
		err = usageErrorf("Unknown command: %s", args[0])
	}

	if err == nil {
		return ExitOK
	}

	var uerr *usageError
	if errors.As(err, &uerr) {
		fmt.Fprintf(a.stderr, "Error: %s\n\n%s", uerr.msg, usage)
	} else {
		fmt.Fprintf(a.stderr, "❌ %v\n", err)
	}
	return ExitFailure
}

func (a *App) list(ctx context.Context, args []string) error {
	fs := newFlagSet("list")
	var filter client.ListFilter
	fs.StringVar(&filter.Assignee, "assignee", "", "only tasks for this assignee")
	fs.StringVar(&filter.Status, "status", "", "only tasks in this status")
	fs.StringVar(&filter.Category, "category", "", "only tasks in this category")

	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return usageErrorf("unexpected arguments: %s", strings.Join(positional, " "))
	}

	tasks, err := a.client.ListTasks(ctx, filter)
	if err != nil {
		return fmt.Errorf("Error listing tasks: %s", describe(err))
	}

	printTasks(a.stdout, tasks)
	return nil
}

func (a *App) create(ctx context.Context, args []string) error {
	fs := newFlagSet("create")
	req := dto.CreateTaskRequest{}
	var description string
	fs.StringVar(&req.Assignee, "assignee", "mira", "assignee")
	fs.StringVar(&description, "description", "", "free-text description")
	fs.StringVar(&req.Status, "status", "backlog", "initial status")
	fs.StringVar(&req.Priority, "priority", "medium", "priority")
	fs.StringVar(&req.Category, "category", "dev", "category")
	fs.StringVar(&req.CreatedBy, "created-by", "cli", "author")

	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		return usageErrorf("Title required")
	}
	if len(positional) > 1 {
		return usageErrorf("unexpected arguments: %s", strings.Join(positional[1:], " "))
	}
	req.Title = positional[0]
	if description != "" {
		req.Description = &description
	}

	task, err := a.client.CreateTask(ctx, req)
	if err != nil {
		fmt.Fprintf(a.stdout, "❌ Error creating task: %s\n", describe(err))
		return nil
	}

	fmt.Fprintf(a.stdout, "✅ Task created: %s\n", task.ID)
	fmt.Fprintf(a.stdout, "   Title: %s\n", task.Title)
	fmt.Fprintf(a.stdout, "   Assignee: %s\n", task.Assignee)
	fmt.Fprintf(a.stdout, "   Status: %s\n", task.Status)
	return nil
}

func (a *App) update(ctx context.Context, args []string) error {
	fs := newFlagSet("update")
	var title, description, assignee, status, priority, category string
	fs.StringVar(&title, "title", "", "new title")
	fs.StringVar(&description, "description", "", "new description")
	fs.StringVar(&assignee, "assignee", "", "new assignee")
	fs.StringVar(&status, "status", "", "new status")
	fs.StringVar(&priority, "priority", "", "new priority")
	fs.StringVar(&category, "category", "", "new category")

	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		return usageErrorf("Task ID required")
	}
	if len(positional) > 1 {
		return usageErrorf("unexpected arguments: %s", strings.Join(positional[1:], " "))
	}
	id := positional[0]

	// Only flags given on the command line end up in the request.
	var params client.UpdateTaskParams
	fs.Visit(func(f *flag.Flag) {
		value := f.Value.String()
		switch f.Name {
		case "title":
			params.Title = &value
		case "description":
			params.Description = &value
		case "assignee":
			params.Assignee = &value
		case "status":
			params.Status = &value
		case "priority":
			params.Priority = &value
		case "category":
			params.Category = &value
		}
	})

	task, err := a.client.UpdateTask(ctx, id, params)
	if err != nil {
		fmt.Fprintf(a.stdout, "❌ Error updating task: %s\n", describe(err))
		return nil
	}

	fmt.Fprintf(a.stdout, "✅ Task updated: %s\n", task.ID)
	fmt.Fprintf(a.stdout, "   Title: %s\n", task.Title)
	fmt.Fprintf(a.stdout, "   Status: %s\n", task.Status)
	return nil
}

func (a *App) delete(ctx context.Context, args []string) error {
	fs := newFlagSet("delete")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		return usageErrorf("Task ID required")
	}
	if len(positional) > 1 {
		return usageErrorf("unexpected arguments: %s", strings.Join(positional[1:], " "))
	}
	id := positional[0]

	if err := a.client.DeleteTask(ctx, id); err != nil {
		fmt.Fprintf(a.stdout, "❌ Error deleting task: %s\n", describe(err))
		return nil
	}

	fmt.Fprintf(a.stdout, "✅ Task deleted: %s\n", id)
	return nil
}

func (a *App) stats(ctx context.Context, args []string) error {
	fs := newFlagSet("stats")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return usageErrorf("unexpected arguments: %s", strings.Join(positional, " "))
	}

	stats, err := a.client.Stats(ctx)
	if err != nil {
		return fmt.Errorf("Error fetching stats: %s", describe(err))
	}

	printStats(a.stdout, stats)
	return nil
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // parsing errors are returned, not printed
	return fs
}

// parseArgs parses flags that may appear before, between or after positional
// arguments. Everything after a "--" terminator is positional.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, usageErrorf("%v", err)
		}
		rest := fs.Args()
		if consumed := len(args) - len(rest); consumed > 0 && args[consumed-1] == "--" && !isFlagValue(fs, args, consumed-1) {
			return append(positional, rest...), nil
		}
		if len(rest) == 0 {
			return positional, nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

// isFlagValue reports whether args[i] was consumed as the value of the flag before it.
func isFlagValue(fs *flag.FlagSet, args []string, i int) bool {
	if i == 0 {
		return false
	}
	prev := args[i-1]
	if !strings.HasPrefix(prev, "-") || strings.Contains(prev, "=") || prev == "--" {
		return false
	}
	f := fs.Lookup(strings.TrimLeft(prev, "-"))
	if f == nil {
		return false
	}
	if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return false
	}
	return true
}

// describe prefers the server's response body over the wrapped error text.
func describe(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && strings.TrimSpace(apiErr.Body) != "" {
		return strings.TrimSpace(apiErr.Body)
	}
	return err.Error()
}
