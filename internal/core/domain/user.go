package domain

import "errors"

var ErrUserNotFound = errors.New("user not found")
var ErrEmailExists = errors.New("email already registered")
var ErrTaskNotFound = errors.New("task not found")
var ErrForbidden = errors.New("access forbidden")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrSessionNotFound = errors.New("session not found")
var ErrInvalidInput = errors.New("invalid input")

// Task is a unit of work embedded in a user's task list. Its public address
// is the position in that list; ID is a stable identifier carried alongside
// so clients are not forced to track shifting indices.
type Task struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IsCompleted bool   `json:"is_completed"`
}

// User is the aggregate root. A user exclusively owns its task list; no
// other entity holds task entries.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         *Role  `json:"role,omitempty"`
	Tasks        []Task `json:"tasks"`
}

// CanManage reports whether actor may assign tasks to or delete target.
// Fails closed when either side has no role. The comparison is strict, so
// equal ranks deny in both directions and nobody manages themselves.
func CanManage(actor, target *User) bool {
	if actor == nil || target == nil {
		return false
	}
	if actor.Role == nil || target.Role == nil {
		return false
	}
	return actor.Role.Outranks(*target.Role)
}

// AppendTask adds a task to the end of the list in the not-completed state.
func (u *User) AppendTask(task Task) {
	task.IsCompleted = false
	u.Tasks = append(u.Tasks, task)
}

// ToggleTask flips the completion flag of the task at index.
func (u *User) ToggleTask(index int) error {
	if index < 0 || index >= len(u.Tasks) {
		return ErrTaskNotFound
	}
	u.Tasks[index].IsCompleted = !u.Tasks[index].IsCompleted
	return nil
}

// RemoveTask deletes the task at index, shifting every later task down by
// one position.
func (u *User) RemoveTask(index int) error {
	if index < 0 || index >= len(u.Tasks) {
		return ErrTaskNotFound
	}
	u.Tasks = append(u.Tasks[:index], u.Tasks[index+1:]...)
	return nil
}

// TaskAt returns the task at index.
func (u *User) TaskAt(index int) (Task, error) {
	if index < 0 || index >= len(u.Tasks) {
		return Task{}, ErrTaskNotFound
	}
	return u.Tasks[index], nil
}
