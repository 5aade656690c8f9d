package service

import (
	"context"
	"sort"
	"sync"

	"github.com/uservault/backend/internal/models"
	"github.com/uservault/backend/internal/utils"
)

// MockUserRepository is an in-memory UserRepository for service tests.
type MockUserRepository struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*models.User

	// FailWith, when set, is returned by every method to simulate storage
	// failures.
	FailWith error
}

// NewMockUserRepository creates an empty in-memory repository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		nextID: 1,
		users:  make(map[int64]*models.User),
	}
}

// Seed inserts a user directly, bypassing Create
func (m *MockUserRepository) Seed(user *models.User) *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()

	if user.ID == 0 {
		user.ID = m.nextID
	}
	if user.ID >= m.nextID {
		m.nextID = user.ID + 1
	}
	copied := *user
	m.users[user.ID] = &copied
	return user
}

func (m *MockUserRepository) Create(_ context.Context, user *models.User) error {
	if m.FailWith != nil {
		return m.FailWith
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Email == user.Email {
			return utils.NewDuplicateError("User", "email", user.Email)
		}
	}

	user.ID = m.nextID
	m.nextID++
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *MockUserRepository) GetByID(_ context.Context, id int64) (*models.User, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, utils.NewNotFoundError("User", id)
	}
	copied := *user
	return &copied, nil
}

func (m *MockUserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, utils.NewNotFoundError("User", email)
}

func (m *MockUserRepository) GetByEmailAndRole(_ context.Context, email string, role models.Role) (*models.User, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.Email == email && user.HasRole(role) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, utils.NewNotFoundError("User", email)
}

func (m *MockUserRepository) Update(_ context.Context, user *models.User) error {
	if m.FailWith != nil {
		return m.FailWith
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.users[user.ID]
	if !ok {
		return utils.NewNotFoundError("User", user.ID)
	}

	stored.Name = user.Name
	stored.Email = user.Email
	stored.Phone = user.Phone
	stored.UpdatedAt = user.UpdatedAt
	return nil
}

func (m *MockUserRepository) UpdateImagePath(_ context.Context, id int64, imagePath string) error {
	if m.FailWith != nil {
		return m.FailWith
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.users[id]
	if !ok {
		return utils.NewNotFoundError("User", id)
	}
	stored.ImagePath = imagePath
	return nil
}

func (m *MockUserRepository) Delete(_ context.Context, id int64) error {
	if m.FailWith != nil {
		return m.FailWith
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[id]; !ok {
		return utils.NewNotFoundError("User", id)
	}
	delete(m.users, id)
	return nil
}

func (m *MockUserRepository) ExistsByEmail(_ context.Context, email string, excludeID int64) (bool, error) {
	if m.FailWith != nil {
		return false, m.FailWith
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.Email == email && user.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockUserRepository) ListByRole(_ context.Context, role models.Role) ([]*models.User, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var users []*models.User
	for _, user := range m.users {
		if user.HasRole(role) {
			copied := *user
			users = append(users, &copied)
		}
	}

	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})

	return users, nil
}
