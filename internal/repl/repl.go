// Package repl implements the advanced-user console that runs alongside the
// HTTP front door. It drives the same dispatcher, and therefore the same
// entity store, so both surfaces always agree.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/lonelyhost/panel/internal/dispatch"
	"github.com/lonelyhost/panel/internal/domain"
)

// REPL reads commands line by line and executes them against the dispatcher.
type REPL struct {
	dispatcher *dispatch.Dispatcher
	operatorID string
	out        io.Writer
}

// New creates a REPL acting as the given operator.
func New(d *dispatch.Dispatcher, operatorID string, out io.Writer) *REPL {
	return &REPL{dispatcher: d, operatorID: operatorID, out: out}
}

// Run consumes lines from in until EOF or context cancellation.
func (r *REPL) Run(ctx context.Context, in io.Reader) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		r.Execute(ctx, scanner.Text())
	}
}

// Execute runs a single command line and prints the result.
func (r *REPL) Execute(ctx context.Context, line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}
	command, args := fields[0], fields[1:]

	switch command {
	case "start":
		if len(args) == 0 {
			fmt.Fprintln(r.out, "usage: start <server-id>")
			return
		}
		r.print(r.dispatcher.StartServer(ctx, args[0]))
	case "stop":
		if len(args) == 0 {
			fmt.Fprintln(r.out, "usage: stop <server-id>")
			return
		}
		r.print(r.dispatcher.StopServer(ctx, args[0]))
	case "balance":
		userID := r.operatorID
		if len(args) > 0 {
			userID = args[0]
		}
		user, ok := r.dispatcher.Store().Users.Get(userID)
		if !ok {
			fmt.Fprintln(r.out, "User not found")
			return
		}
		fmt.Fprintf(r.out, "User balance: $%d\n", user.Balance)
	case "rename":
		name := strings.Join(args, " ")
		if name == "" {
			name = "Lonely"
		}
		r.dispatcher.Store().SetPanelName(name)
		fmt.Fprintf(r.out, "Panel renamed to %s\n", name)
	default:
		fmt.Fprintln(r.out, "Unknown command")
	}
}

func (r *REPL) print(msg string, err error) {
	if err != nil {
		if appErr, ok := err.(*domain.AppError); ok {
			fmt.Fprintln(r.out, appErr.Message)
			return
		}
		fmt.Fprintln(r.out, err.Error())
		return
	}
	fmt.Fprintln(r.out, msg)
}
