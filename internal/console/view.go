package console

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/hongminglow/user-directory/internal/directory"
)

// Render writes the banner, the notice, the form and the list for s.
func Render(w io.Writer, s directory.State) {
	if s.Error != "" {
		fmt.Fprintf(w, "Error: %s (type 'dismiss' to hide)\n\n", s.Error)
	}
	if s.Notice != nil {
		fmt.Fprintf(w, "[%s] %s\n\n", s.Notice.Category, s.Notice.Message)
	}
	RenderForm(w, s)
	fmt.Fprintln(w)
	RenderList(w, s)
}

// RenderForm writes the form view. Field errors appear only after a submit attempt.
func RenderForm(w io.Writer, s directory.State) {
	if s.Editing != nil {
		fmt.Fprintf(w, "== Edit User (id %d) ==\n", s.Editing.ID)
	} else {
		fmt.Fprintln(w, "== Add New User ==")
	}
	errs := s.Form.FieldErrors()
	field := func(label, key, value string) {
		fmt.Fprintf(w, "  %-6s %s\n", label+":", value)
		if msg, ok := errs[key]; ok {
			fmt.Fprintf(w, "         ! %s\n", msg)
		}
	}
	field("Name", directory.FieldName, s.Form.Name)
	field("Email", directory.FieldEmail, s.Form.Email)
	field("Phone", directory.FieldPhone, s.Form.Phone)
	if s.Editing != nil {
		fmt.Fprintln(w, "  (submit to update, cancel to stop editing)")
	} else {
		fmt.Fprintln(w, "  (submit to add)")
	}
}

// RenderList writes the list view as a table.
func RenderList(w io.Writer, s directory.State) {
	noun := "Users"
	if len(s.Records) == 1 {
		noun = "User"
	}
	fmt.Fprintf(w, "== User List (%d %s) ==\n", len(s.Records), noun)
	if len(s.Records) == 0 {
		fmt.Fprintln(w, "  No users found. Add one!")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  ID\tNAME\tEMAIL\tPHONE")
	for _, u := range s.Records {
		phone := u.PhoneValue()
		if phone == "" {
			phone = "-"
		}
		fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, phone)
	}
	_ = tw.Flush()
}
