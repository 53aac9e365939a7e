package store

import (
	"context"
	"sync"
	"time"

	"taskassign/models"
)

// Memory is an in-memory implementation of Store used by tests. The fault
// fields let a test fail a specific write to exercise the partial-failure
// paths.
type Memory struct {
	mu    sync.RWMutex
	tasks map[string]models.Task
	users map[string]models.User

	FailInsertTask       error
	FailPushSnapshot     error
	FailDeleteUser       error
	FailDeleteByAssignee error
}

func NewMemory() *Memory {
	return &Memory{
		tasks: make(map[string]models.Task),
		users: make(map[string]models.User),
	}
}

func (m *Memory) Tasks() TaskStore { return (*memoryTasks)(m) }
func (m *Memory) Users() UserStore { return (*memoryUsers)(m) }

// InTransaction snapshots both maps, runs fn and restores the snapshot when
// fn fails, mimicking a mongo multi-document transaction.
func (m *Memory) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	savedTasks := make(map[string]models.Task, len(m.tasks))
	for k, v := range m.tasks {
		savedTasks[k] = v
	}
	savedUsers := make(map[string]models.User, len(m.users))
	for k, v := range m.users {
		savedUsers[k] = cloneUser(v)
	}
	m.mu.Unlock()

	if err := fn(ctx); err != nil {
		m.mu.Lock()
		m.tasks = savedTasks
		m.users = savedUsers
		m.mu.Unlock()
		return err
	}
	return nil
}

// AddUser seeds a user record.
func (m *Memory) AddUser(user models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.Email] = cloneUser(user)
}

func cloneUser(u models.User) models.User {
	c := u
	c.Tasks = append([]models.TaskSnapshot(nil), u.Tasks...)
	return c
}

type memoryTasks Memory

func (m *memoryTasks) All(ctx context.Context) ([]models.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		out = append(out, t)
	}
	return out, nil
}

func (m *memoryTasks) FindByID(ctx context.Context, taskID string) (*models.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tasks[taskID]
	if !ok {
		return nil, ErrTaskNotFound
	}
	return &t, nil
}

func (m *memoryTasks) Insert(ctx context.Context, task models.Task) error {
	if m.FailInsertTask != nil {
		return m.FailInsertTask
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[task.TaskID]; ok {
		return ErrDuplicateTaskID
	}
	m.tasks[task.TaskID] = task
	return nil
}

func (m *memoryTasks) SetStatusPriority(ctx context.Context, taskID, status, priority string) (*models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[taskID]
	if !ok {
		return nil, ErrTaskNotFound
	}
	t.Status = status
	t.Priority = priority
	t.UpdatedAt = time.Now()
	m.tasks[taskID] = t
	return &t, nil
}

func (m *memoryTasks) Delete(ctx context.Context, taskID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[taskID]; !ok {
		return ErrTaskNotFound
	}
	delete(m.tasks, taskID)
	return nil
}

func (m *memoryTasks) DeleteByAssignee(ctx context.Context, email string) (int64, error) {
	if m.FailDeleteByAssignee != nil {
		return 0, m.FailDeleteByAssignee
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, t := range m.tasks {
		if t.AssignedTo == email {
			delete(m.tasks, id)
			n++
		}
	}
	return n, nil
}

type memoryUsers Memory

func (m *memoryUsers) Employees(ctx context.Context) ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.User{}
	for _, u := range m.users {
		if u.Role == models.RoleEmployee {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (m *memoryUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	c := cloneUser(u)
	return &c, nil
}

func (m *memoryUsers) Apply(ctx context.Context, email string, update models.UserUpdate) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	if update.Name != "" {
		u.Name = update.Name
	}
	if update.Email != "" {
		u.Email = update.Email
	}
	if update.Password != "" {
		u.Password = update.Password
	}
	if update.Role != "" {
		u.Role = update.Role
	}
	u.UpdatedAt = time.Now()
	if u.Email != email {
		delete(m.users, email)
	}
	m.users[u.Email] = u
	c := cloneUser(u)
	return &c, nil
}

func (m *memoryUsers) Delete(ctx context.Context, email string) error {
	if m.FailDeleteUser != nil {
		return m.FailDeleteUser
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[email]; !ok {
		return ErrUserNotFound
	}
	delete(m.users, email)
	return nil
}

func (m *memoryUsers) PushSnapshot(ctx context.Context, email string, snap models.TaskSnapshot) error {
	if m.FailPushSnapshot != nil {
		return m.FailPushSnapshot
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return ErrUserNotFound
	}
	u.Tasks = append(u.Tasks, snap)
	m.users[email] = u
	return nil
}

func (m *memoryUsers) UpdateSnapshot(ctx context.Context, email, taskID, status, priority string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return false, nil
	}
	for i := range u.Tasks {
		if u.Tasks[i].TaskID == taskID {
			u.Tasks[i].Status = status
			u.Tasks[i].Priority = priority
			m.users[email] = u
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryUsers) PullSnapshot(ctx context.Context, email, taskID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil
	}
	kept := u.Tasks[:0]
	for _, s := range u.Tasks {
		if s.TaskID != taskID {
			kept = append(kept, s)
		}
	}
	u.Tasks = kept
	m.users[email] = u
	return nil
}
