package account

import (
	"context"
	"strings"
	"sync"

	"github.com/ashwinyue/thesis-hub/internal/model"
	"github.com/ashwinyue/thesis-hub/internal/repository"
)

// fakeAccounts 内存账号仓库，返回副本
type fakeAccounts struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{users: make(map[string]*model.User)}
}

func cloneUser(u *model.User) *model.User {
	c := *u
	c.Roles = append([]*model.Role(nil), u.Roles...)
	return &c
}

func (f *fakeAccounts) Create(_ context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = cloneUser(user)
	return nil
}

func (f *fakeAccounts) Update(_ context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.users[user.ID]
	if !ok {
		return repository.ErrNotFound
	}
	c := cloneUser(user)
	c.Roles = stored.Roles
	f.users[user.ID] = c
	return nil
}

func (f *fakeAccounts) find(match func(*model.User) bool) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if match(u) {
			return cloneUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeAccounts) GetByID(_ context.Context, id string) (*model.User, error) {
	return f.find(func(u *model.User) bool { return u.ID == id })
}

func (f *fakeAccounts) GetByEmail(_ context.Context, email string) (*model.User, error) {
	return f.find(func(u *model.User) bool { return strings.EqualFold(u.Email, strings.TrimSpace(email)) })
}

func (f *fakeAccounts) GetByUsername(_ context.Context, username string) (*model.User, error) {
	return f.find(func(u *model.User) bool { return strings.EqualFold(u.Username, strings.TrimSpace(username)) })
}

func (f *fakeAccounts) List(_ context.Context, q repository.AccountQuery) ([]*model.User, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.User
	for _, u := range f.users {
		if q.Role != "" && !u.HasRole(q.Role) {
			continue
		}
		if q.Active != nil && u.IsActive != *q.Active {
			continue
		}
		if q.Keyword != "" && !strings.Contains(strings.ToLower(u.Username), strings.ToLower(q.Keyword)) {
			continue
		}
		out = append(out, cloneUser(u))
	}
	return out, int64(len(out)), nil
}

func (f *fakeAccounts) AddRole(_ context.Context, userID string, role *model.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.Roles = append(u.Roles, role)
	return nil
}

func (f *fakeAccounts) RemoveRole(_ context.Context, userID string, role *model.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	kept := u.Roles[:0:0]
	for _, r := range u.Roles {
		if r.ID != role.ID {
			kept = append(kept, r)
		}
	}
	u.Roles = kept
	return nil
}

func (f *fakeAccounts) CountActiveWithRole(_ context.Context, roleName string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, u := range f.users {
		if u.IsActive && u.HasRole(roleName) {
			n++
		}
	}
	return n, nil
}

// fakeRoles 内存角色仓库
type fakeRoles struct {
	roles []*model.Role
}

func newFakeRoles() *fakeRoles {
	f := &fakeRoles{}
	for _, name := range model.DefaultRoles {
		f.roles = append(f.roles, &model.Role{ID: "role-" + strings.ToLower(name), Name: name})
	}
	return f
}

func (f *fakeRoles) GetByName(_ context.Context, name string) (*model.Role, error) {
	for _, r := range f.roles {
		if strings.EqualFold(r.Name, strings.TrimSpace(name)) {
			return r, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeRoles) List(context.Context) ([]*model.Role, error) {
	return f.roles, nil
}

func (f *fakeRoles) EnsureDefaults(context.Context, []string) error {
	return nil
}
