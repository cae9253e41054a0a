// Package directory holds the client-side state of the users directory: the cached record set,
// the form and its edit mode, the error banner and the transient notice. Every transition
// goes through a Controller method so the state can be exercised without any rendering layer.
package directory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/hongminglow/user-directory/internal/models"
	"github.com/hongminglow/user-directory/internal/models/dto"
)

// Messages shown to the user.
const (
	MsgLoadFailed    = "Error fetching users. Please check if the server is running."
	MsgCreateFailed  = "Error adding user"
	MsgUpdateFailed  = "Error updating user"
	MsgDeleteFailed  = "Error deleting user"
	MsgCreated       = "User added successfully!"
	MsgUpdated       = "User updated successfully!"
	MsgDeleted       = "User deleted successfully!"
	MsgConfirmDelete = "Are you sure you want to delete this user?"
)

var (
	// ErrInvalidInput is returned when name or email is missing; no request is sent.
	ErrInvalidInput = errors.New("name and email are required")
	// ErrUnknownRecord is returned when an id is not in the cached record set.
	ErrUnknownRecord = errors.New("user is not in the list")
)

// API is the remote store as seen by the controller.
type API interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, in dto.UserInput) (models.User, error)
	UpdateUser(ctx context.Context, id int64, in dto.UserInput) (models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// Confirmer asks the user a blocking yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

// Confirm calls f.
func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// State is a snapshot of everything the views render.
type State struct {
	Records []models.User
	// Editing is nil in create mode, otherwise a copy of the record being edited.
	Editing *models.User
	// Error is the dismissible banner text.
	Error  string
	Notice *Notice
	Form   Form
}

func (s State) clone() State {
	out := s
	out.Records = make([]models.User, len(s.Records))
	for i, u := range s.Records {
		out.Records[i] = u.Clone()
	}
	if s.Editing != nil {
		editing := s.Editing.Clone()
		out.Editing = &editing
	}
	if s.Notice != nil {
		notice := *s.Notice
		out.Notice = &notice
	}
	return out
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock sets the clock used to expire notices.
func WithClock(clk clock.Clock) Option {
	return func(c *Controller) {
		if clk != nil {
			c.clock = clk
		}
	}
}

// WithNoticeTTL sets how long notices stay visible.
func WithNoticeTTL(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.noticeTTL = d
		}
	}
}

// WithLogger sets the logger used to record failed calls.
func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// Controller owns the directory state and keeps it in sync with the API.
//
// Calls may overlap. Network calls run outside the lock and their results are applied in
// arrival order, so when a Load races a mutation the response that lands last wins.
type Controller struct {
	api       API
	confirm   Confirmer
	clock     clock.Clock
	noticeTTL time.Duration
	log       *zap.Logger

	mu          sync.Mutex
	state       State
	noticeTimer *clock.Timer
	noticeGen   uint64
}

// New creates a Controller in create mode with an empty record set.
func New(api API, confirm Confirmer, opts ...Option) *Controller {
	c := &Controller{
		api:       api,
		confirm:   confirm,
		clock:     clock.New(),
		noticeTTL: DefaultNoticeTTL,
		log:       zap.NewNop(),
		state:     State{Records: []models.User{}},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Load replaces the record set with the server's. On failure the previous records stay visible.
func (c *Controller) Load(ctx context.Context) error {
	users, err := c.api.ListUsers(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.log.Warn("fetch users failed", zap.Error(err))
		c.state.Error = MsgLoadFailed
		return fmt.Errorf("load users: %w", err)
	}
	if users == nil {
		users = []models.User{}
	}
	c.state.Records = users
	c.state.Error = ""
	return nil
}

// Create sends in to the API and appends the stored record on success.
func (c *Controller) Create(ctx context.Context, in dto.UserInput) error {
	if !in.Valid() {
		return ErrInvalidInput
	}
	created, err := c.api.CreateUser(ctx, in)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.log.Warn("add user failed", zap.Error(err))
		c.state.Error = MsgCreateFailed
		return fmt.Errorf("create user: %w", err)
	}
	c.state.Records = append(c.state.Records, created)
	c.resetForm()
	c.showNotice(MsgCreated, CategorySuccess)
	return nil
}

// Update sends in for record id and swaps the cached record for the stored one on success.
func (c *Controller) Update(ctx context.Context, id int64, in dto.UserInput) error {
	if !in.Valid() {
		return ErrInvalidInput
	}
	updated, err := c.api.UpdateUser(ctx, id, in)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.log.Warn("update user failed", zap.Int64("id", id), zap.Error(err))
		c.state.Error = MsgUpdateFailed
		return fmt.Errorf("update user %d: %w", id, err)
	}
	for i := range c.state.Records {
		if c.state.Records[i].ID == id {
			c.state.Records[i] = updated
		}
	}
	c.resetForm()
	c.showNotice(MsgUpdated, CategorySuccess)
	return nil
}

// Delete asks for confirmation and then removes record id. It reports whether a delete was performed.
func (c *Controller) Delete(ctx context.Context, id int64) (bool, error) {
	if c.confirm == nil || !c.confirm.Confirm(MsgConfirmDelete) {
		return false, nil
	}
	err := c.api.DeleteUser(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.log.Warn("delete user failed", zap.Int64("id", id), zap.Error(err))
		c.state.Error = MsgDeleteFailed
		return false, fmt.Errorf("delete user %d: %w", id, err)
	}
	kept := make([]models.User, 0, len(c.state.Records))
	for _, u := range c.state.Records {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	c.state.Records = kept
	c.showNotice(MsgDeleted, CategoryInfo)
	return true, nil
}

// BeginEdit switches to edit mode for a copy of u and fills the form with its values.
func (c *Controller) BeginEdit(u models.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	editing := u.Clone()
	c.state.Editing = &editing
	submitted := c.state.Form.Submitted
	c.state.Form = formFor(editing)
	c.state.Form.Submitted = submitted
}

// BeginEditByID is BeginEdit for a record already in the list.
func (c *Controller) BeginEditByID(id int64) error {
	c.mu.Lock()
	var found *models.User
	for _, u := range c.state.Records {
		if u.ID == id {
			u := u
			found = &u
			break
		}
	}
	c.mu.Unlock()
	if found == nil {
		return ErrUnknownRecord
	}
	c.BeginEdit(*found)
	return nil
}

// CancelEdit returns to create mode with an empty, untouched form.
func (c *Controller) CancelEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetForm()
}

// SetField changes one form value.
func (c *Controller) SetField(field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Form.set(field, value)
}

// Submit marks the form as submitted and, when name and email are present, calls Update in
// edit mode or Create otherwise. An invalid form returns ErrInvalidInput without a request.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	c.state.Form.Submitted = true
	form := c.state.Form
	var editingID int64
	editing := c.state.Editing != nil
	if editing {
		editingID = c.state.Editing.ID
	}
	c.mu.Unlock()

	if form.Status() == FormSubmittedInvalid {
		return ErrInvalidInput
	}
	if editing {
		return c.Update(ctx, editingID, form.Input())
	}
	return c.Create(ctx, form.Input())
}

// DismissError hides the banner.
func (c *Controller) DismissError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Error = ""
}

// resetForm leaves edit mode and clears the form. Caller holds c.mu.
func (c *Controller) resetForm() {
	c.state.Editing = nil
	c.state.Form = Form{}
}
