package console

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hongminglow/user-directory/internal/client"
	"github.com/hongminglow/user-directory/internal/config"
	"github.com/hongminglow/user-directory/internal/directory"
	"github.com/hongminglow/user-directory/internal/models"
	"github.com/hongminglow/user-directory/internal/server"
	"github.com/hongminglow/user-directory/internal/storage/memory"
)

func runScript(t *testing.T, handler http.Handler, script string) string {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	api, err := client.New(ts.URL + "/api")
	require.NoError(t, err)

	var out bytes.Buffer
	con := New(strings.NewReader(script), &out)
	ctrl := directory.New(api, con, directory.WithClock(clock.NewMock()))
	require.NoError(t, con.Run(context.Background(), ctrl))
	return out.String()
}

func newStoreHandler(t *testing.T) (http.Handler, *memory.Store) {
	t.Helper()
	store, err := memory.NewUserStore()
	require.NoError(t, err)
	return server.NewHandler(config.Config{CORSOrigins: []string{"*"}}, store, zap.NewNop()), store
}

func TestConsoleSession(t *testing.T) {
	h, store := newStoreHandler(t)
	script := strings.Join([]string{
		"submit",
		"set name Ana Lima",
		"set email ana@x.com",
		"submit",
		"edit 1",
		"set phone 555 0101",
		"submit",
		"delete 1",
		"n",
		"delete 1",
		"y",
		"quit",
	}, "\n")

	out := runScript(t, h, script)

	assert.Contains(t, out, "No users found. Add one!")
	assert.Contains(t, out, "! Name is required")
	assert.Contains(t, out, "[success] User added successfully!")
	assert.Contains(t, out, "== Edit User (id 1) ==")
	assert.Contains(t, out, "555 0101")
	assert.Contains(t, out, "[success] User updated successfully!")
	assert.Equal(t, 2, strings.Count(out, directory.MsgConfirmDelete+" [y/N] "))
	assert.Contains(t, out, "[info] User deleted successfully!")

	users, err := store.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestConsoleReportsBadCommands(t *testing.T) {
	h, _ := newStoreHandler(t)

	out := runScript(t, h, "frobnicate\nedit abc\nedit 9\nset age 3\nhelp\n")

	assert.Contains(t, out, `unknown command "frobnicate" (try help)`)
	assert.Contains(t, out, `invalid id "abc"`)
	assert.Contains(t, out, directory.ErrUnknownRecord.Error())
	assert.Contains(t, out, `unknown field "age"`)
	assert.Contains(t, out, "delete <id>")
}

func TestConsoleShowsBanner(t *testing.T) {
	down := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	out := runScript(t, down, "dismiss\nquit\n")

	first, rest, found := strings.Cut(out, "> ")
	require.True(t, found)
	assert.Contains(t, first, "Error: "+directory.MsgLoadFailed)
	assert.NotContains(t, rest, "Error: ")
}

func TestRenderList(t *testing.T) {
	p := "555"
	var buf bytes.Buffer
	RenderList(&buf, directory.State{Records: []models.User{
		{ID: 1, Name: "Ana", Email: "ana@x.com"},
		{ID: 2, Name: "Bo", Email: "bo@x.com", Phone: &p},
	}})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "== User List (2 Users) ==", lines[0])
	assert.Equal(t, []string{"1", "Ana", "ana@x.com", "-"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"2", "Bo", "bo@x.com", "555"}, strings.Fields(lines[3]))
}

func TestRenderFormModes(t *testing.T) {
	var buf bytes.Buffer
	RenderForm(&buf, directory.State{})
	assert.Contains(t, buf.String(), "== Add New User ==")
	assert.NotContains(t, buf.String(), "required")

	buf.Reset()
	RenderForm(&buf, directory.State{
		Editing: &models.User{ID: 4},
		Form:    directory.Form{Name: "Cy", Submitted: true},
	})
	assert.Contains(t, buf.String(), "== Edit User (id 4) ==")
	assert.Contains(t, buf.String(), "! Email is required")
	assert.NotContains(t, buf.String(), "Name is required")
}
