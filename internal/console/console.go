package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hongminglow/user-directory/internal/directory"
)

const helpText = `commands:
  list | reload            fetch the directory again
  new                      switch to the add form
  edit <id>                load a user into the form
  set <field> <value>      set name, email or phone
  submit                   add or update from the form
  cancel                   leave edit mode and clear the form
  delete <id>              delete a user (asks first)
  dismiss                  hide the error banner
  help                     show this text
  quit                     exit`

// Console is a line-oriented front end over a directory.Controller.
// It also answers the controller's delete confirmations from the same input.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

// New creates a Console reading commands from in and writing views to out.
func New(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewScanner(in), out: out}
}

// Confirm prints prompt and reads a yes/no answer. Anything but y or yes declines.
func (c *Console) Confirm(prompt string) bool {
	fmt.Fprintf(c.out, "%s [y/N] ", prompt)
	if !c.in.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(c.in.Text()))
	return answer == "y" || answer == "yes"
}

// Run loads the directory and processes commands until quit or end of input.
func (c *Console) Run(ctx context.Context, ctrl *directory.Controller) error {
	_ = ctrl.Load(ctx)
	Render(c.out, ctrl.Snapshot())

	for {
		fmt.Fprint(c.out, "\n> ")
		if !c.in.Scan() {
			return c.in.Err()
		}
		line := strings.TrimSpace(c.in.Text())
		if line == "" {
			continue
		}
		quit, err := c.exec(ctx, ctrl, line)
		if quit {
			return nil
		}
		if err != nil {
			fmt.Fprintf(c.out, "%v\n", err)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		Render(c.out, ctrl.Snapshot())
	}
}

func (c *Console) exec(ctx context.Context, ctrl *directory.Controller, line string) (bool, error) {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(cmd) {
	case "quit", "exit":
		return true, nil
	case "help":
		fmt.Fprintln(c.out, helpText)
		return false, nil
	case "list", "reload":
		return false, ctrl.Load(ctx)
	case "new", "cancel":
		ctrl.CancelEdit()
		return false, nil
	case "edit":
		id, err := parseID(rest)
		if err != nil {
			return false, err
		}
		return false, ctrl.BeginEditByID(id)
	case "set":
		field, value, _ := strings.Cut(rest, " ")
		return false, ctrl.SetField(strings.ToLower(field), strings.TrimSpace(value))
	case "submit":
		err := ctrl.Submit(ctx)
		if errors.Is(err, directory.ErrInvalidInput) {
			// Field messages are shown by the form view.
			return false, nil
		}
		return false, err
	case "delete":
		id, err := parseID(rest)
		if err != nil {
			return false, err
		}
		_, err = ctrl.Delete(ctx, id)
		return false, err
	case "dismiss":
		ctrl.DismissError()
		return false, nil
	default:
		return false, fmt.Errorf("unknown command %q (try help)", cmd)
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
