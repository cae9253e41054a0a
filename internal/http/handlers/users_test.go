package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hongminglow/user-directory/internal/models"
	"github.com/hongminglow/user-directory/internal/storage"
	"github.com/hongminglow/user-directory/internal/storage/memory"
)

func newTestRouter(t *testing.T, store storage.UserStore) http.Handler {
	t.Helper()
	router := mux.NewRouter()
	NewUsersHandler(store, zap.NewNop()).Register(router.PathPrefix("/api").Subrouter())
	return router
}

func newMemoryRouter(t *testing.T) (http.Handler, *memory.Store) {
	t.Helper()
	store, err := memory.NewUserStore()
	require.NoError(t, err)
	return newTestRouter(t, store), store
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestUserLifecycleScenario(t *testing.T) {
	h, _ := newMemoryRouter(t)

	rec := do(t, h, http.MethodPost, "/api/users", `{"name":"Ana","email":"ana@x.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":1,"name":"Ana","email":"ana@x.com","phone":null}`, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	rec = do(t, h, http.MethodGet, "/api/users/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"name":"Ana","email":"ana@x.com","phone":null}`, rec.Body.String())

	rec = do(t, h, http.MethodPut, "/api/users/1", `{"name":"Ana B","email":"ana@x.com","phone":"555"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"name":"Ana B","email":"ana@x.com","phone":"555"}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/users/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"name":"Ana B","email":"ana@x.com","phone":"555"}`, rec.Body.String())

	rec = do(t, h, http.MethodDelete, "/api/users/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"User deleted successfully"}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/users/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"User not found"}`, rec.Body.String())
}

func TestCreateRequiresNameAndEmail(t *testing.T) {
	h, store := newMemoryRouter(t)

	bodies := []string{
		`{"email":"x@x.com"}`,
		`{"name":"X"}`,
		`{"name":"","email":"x@x.com","phone":"1"}`,
		`{}`,
	}
	for _, body := range bodies {
		// Twice, to show a rejected request never leaves a record behind.
		for i := 0; i < 2; i++ {
			rec := do(t, h, http.MethodPost, "/api/users", body)
			require.Equal(t, http.StatusBadRequest, rec.Code, body)
			assert.JSONEq(t, `{"message":"Name and email are required"}`, rec.Body.String())
		}
	}

	users, err := store.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)

	rec := do(t, h, http.MethodGet, "/api/users", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestUpdateRequiresNameAndEmailBeforeLookup(t *testing.T) {
	h, store := newMemoryRouter(t)
	created, err := store.CreateUser(context.Background(), models.User{Name: "Ana", Email: "ana@x.com"})
	require.NoError(t, err)

	rec := do(t, h, http.MethodPut, "/api/users/1", `{"name":"","email":"new@x.com"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Name and email are required"}`, rec.Body.String())

	// Validation wins over a missing id.
	rec = do(t, h, http.MethodPut, "/api/users/999", `{"email":"new@x.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	got, err := store.GetUser(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestUpdateAndDeleteUnknownID(t *testing.T) {
	h, _ := newMemoryRouter(t)

	rec := do(t, h, http.MethodPut, "/api/users/42", `{"name":"A","email":"a@x.com"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"User not found"}`, rec.Body.String())

	rec = do(t, h, http.MethodDelete, "/api/users/42", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"User not found"}`, rec.Body.String())
}

func TestNonNumericIDIsNotFound(t *testing.T) {
	store := &failingStore{err: errors.New("must not be called")}
	h := newTestRouter(t, store)

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		rec := do(t, h, method, "/api/users/abc", "")
		assert.Equal(t, http.StatusNotFound, rec.Code, method)
	}
	rec := do(t, h, http.MethodPut, "/api/users/abc", `{"name":"A","email":"a@x.com"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Zero(t, store.calls)
}

func TestInvalidJSON(t *testing.T) {
	h, _ := newMemoryRouter(t)

	for _, body := range []string{`{"name":`, `{"name":1,"email":"a@x.com"}`, `[]`} {
		rec := do(t, h, http.MethodPost, "/api/users", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.JSONEq(t, `{"message":"Invalid JSON payload"}`, rec.Body.String())
	}
}

func TestEmptyPhoneIsNull(t *testing.T) {
	h, _ := newMemoryRouter(t)

	rec := do(t, h, http.MethodPost, "/api/users", `{"name":"Ana","email":"ana@x.com","phone":""}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":1,"name":"Ana","email":"ana@x.com","phone":null}`, rec.Body.String())

	rec = do(t, h, http.MethodPut, "/api/users/1", `{"name":"Ana","email":"ana@x.com","phone":""}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"name":"Ana","email":"ana@x.com","phone":null}`, rec.Body.String())
}

func TestEmailIsNotUnique(t *testing.T) {
	h, _ := newMemoryRouter(t)

	for i := 0; i < 2; i++ {
		rec := do(t, h, http.MethodPost, "/api/users", `{"name":"Ana","email":"not-an-email"}`)
		require.Equal(t, http.StatusCreated, rec.Code)
	}
}

func TestListCountsCreatesMinusDeletes(t *testing.T) {
	h, _ := newMemoryRouter(t)

	for _, name := range []string{"A", "B", "C", "D"} {
		rec := do(t, h, http.MethodPost, "/api/users", `{"name":"`+name+`","email":"x@x.com"}`)
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	require.Equal(t, http.StatusOK, do(t, h, http.MethodDelete, "/api/users/2", "").Code)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodDelete, "/api/users/4", "").Code)
	require.Equal(t, http.StatusNotFound, do(t, h, http.MethodDelete, "/api/users/4", "").Code)

	rec := do(t, h, http.MethodGet, "/api/users", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var users []models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	require.Len(t, users, 2)
	assert.Equal(t, int64(1), users[0].ID)
	assert.Equal(t, int64(3), users[1].ID)
}

func TestStoreErrorsAreSurfaced(t *testing.T) {
	store := &failingStore{err: errors.New("dial tcp 10.0.0.1:3306: connect: connection refused")}
	h := newTestRouter(t, store)
	want := `{"error":"dial tcp 10.0.0.1:3306: connect: connection refused"}`

	cases := []struct {
		method, path, body string
	}{
		{http.MethodGet, "/api/users", ""},
		{http.MethodGet, "/api/users/1", ""},
		{http.MethodPost, "/api/users", `{"name":"A","email":"a@x.com"}`},
		{http.MethodPut, "/api/users/1", `{"name":"A","email":"a@x.com"}`},
		{http.MethodDelete, "/api/users/1", ""},
	}
	for _, tc := range cases {
		rec := do(t, h, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusInternalServerError, rec.Code, tc.method+" "+tc.path)
		assert.JSONEq(t, want, rec.Body.String())
	}
	assert.Equal(t, len(cases), store.calls)
}

func TestWrongMethod(t *testing.T) {
	h, _ := newMemoryRouter(t)
	rec := do(t, h, http.MethodPatch, "/api/users/1", `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

// failingStore fails every call with err.
type failingStore struct {
	err   error
	calls int
}

func (s *failingStore) ListUsers(context.Context) ([]models.User, error) {
	s.calls++
	return nil, s.err
}

func (s *failingStore) GetUser(context.Context, int64) (models.User, error) {
	s.calls++
	return models.User{}, s.err
}

func (s *failingStore) CreateUser(context.Context, models.User) (models.User, error) {
	s.calls++
	return models.User{}, s.err
}

func (s *failingStore) UpdateUser(context.Context, models.User) error {
	s.calls++
	return s.err
}

func (s *failingStore) DeleteUser(context.Context, int64) error {
	s.calls++
	return s.err
}

func (s *failingStore) Ping(context.Context) error { return s.err }

func (s *failingStore) Close() {}
