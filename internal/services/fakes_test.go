package services

import (
	"sort"
	"sync"
	"time"

	"stockroom/internal/models"
	"stockroom/internal/repositories"
)

type memUsers struct {
	mu    sync.Mutex
	users map[int]*models.User
	next  int
}

func newMemUsers() *memUsers {
	return &memUsers{users: map[int]*models.User{}}
}

func (m *memUsers) Create(u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return repositories.ErrUserExists
		}
	}
	m.next++
	u.ID = m.next
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUsers) GetByID(id int) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByEmail(email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memUsers) setPassword(userID int, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

// memResets consumes entries against users the way the sql repository does:
// the used flag and the password change land together or not at all.
type memResets struct {
	mu      sync.Mutex
	entries []*models.PasswordReset
	users   *memUsers
	// writeErr fails the password write of the next consume.
	writeErr error
}

func (m *memResets) Create(pr *models.PasswordReset) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	pr.ID = len(m.entries) + 1
	cp := *pr
	m.entries = append(m.entries, &cp)
	return nil
}

func (m *memResets) GetLatestByUser(userID int) (*models.PasswordReset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var mine []*models.PasswordReset
	for _, e := range m.entries {
		if e.UserID == userID {
			mine = append(mine, e)
		}
	}
	if len(mine) == 0 {
		return nil, repositories.ErrNotFound
	}
	sort.Slice(mine, func(i, j int) bool {
		if mine[i].CreatedAt.Equal(mine[j].CreatedAt) {
			return mine[i].ID > mine[j].ID
		}
		return mine[i].CreatedAt.After(mine[j].CreatedAt)
	})
	cp := *mine[0]
	return &cp, nil
}

func (m *memResets) ConsumeAndSetPassword(resetID, userID int, hash string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries {
		if e.ID != resetID || e.UserID != userID {
			continue
		}
		if e.Used {
			return false, nil
		}
		if m.writeErr != nil {
			err := m.writeErr
			m.writeErr = nil
			return false, err
		}
		if err := m.users.setPassword(userID, hash); err != nil {
			return false, err
		}
		e.Used = true
		return true, nil
	}
	return false, nil
}

func (m *memResets) all() []*models.PasswordReset {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.PasswordReset, len(m.entries))
	for i, e := range m.entries {
		cp := *e
		out[i] = &cp
	}
	return out
}

type sentMail struct {
	to   string
	code string
	ttl  time.Duration
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (f *fakeMailer) SendPasswordResetCode(email, code string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{to: email, code: code, ttl: ttl})
	return f.err
}

// cheapAuth keeps service tests fast; bcrypt is covered in auth_service_test.go.
type cheapAuth struct{}

func (cheapAuth) HashPassword(p string) (string, error) { return "hashed:" + p, nil }
func (cheapAuth) CheckPassword(h, p string) bool        { return h == "hashed:"+p }
func (cheapAuth) IssueAccessToken(*models.User) (string, time.Time, error) {
	return "token", time.Now(), nil
}
func (cheapAuth) ParseAccessToken(string) (*Claims, error) { return nil, ErrInvalidToken }
