package mocks

import (
	"context"

	"github.com/dengue-surveillance-api/internal/models"
	"github.com/dengue-surveillance-api/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	Users       map[string]*models.User // keyed by email
	NextID      int64
	CreateError error
	SeedCalls   int
}

// Verify interface compliance
var _ repository.UserRepository = (*MockUserRepository)(nil)

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{Users: make(map[string]*models.User), NextID: 1}
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	user.ID = m.NextID
	m.NextID++
	m.Users[user.Email] = user
	return nil
}

func (m *MockUserRepository) GetActiveByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := m.Users[email]
	if !ok || !user.Active {
		return nil, nil
	}
	return user, nil
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	_, exists := m.Users[email]
	return exists, nil
}

func (m *MockUserRepository) EnsureSeed(ctx context.Context, user *models.User) error {
	m.SeedCalls++
	if _, exists := m.Users[user.Email]; exists {
		return nil
	}
	user.ID = m.NextID
	m.NextID++
	user.Active = true
	m.Users[user.Email] = user
	return nil
}

// MockSightingRepository is a mock implementation of SightingRepository
type MockSightingRepository struct {
	Items       []*models.Sighting // insertion order, oldest first
	NextID      int64
	CreateError error
	UpdateRows  *int64
	DeleteRows  *int64
}

var _ repository.SightingRepository = (*MockSightingRepository)(nil)

func NewMockSightingRepository() *MockSightingRepository {
	return &MockSightingRepository{NextID: 1}
}

func (m *MockSightingRepository) List(ctx context.Context, category string, opts repository.ListOptions) ([]*models.Sighting, error) {
	filtered := []*models.Sighting{}
	for i := len(m.Items) - 1; i >= 0; i-- { // newest-created first
		s := m.Items[i]
		if category == "" || s.Category == category {
			filtered = append(filtered, s)
		}
	}
	return paginate(filtered, opts), nil
}

func (m *MockSightingRepository) GetByID(ctx context.Context, id int64) (*models.Sighting, error) {
	for _, s := range m.Items {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (m *MockSightingRepository) Create(ctx context.Context, s *models.Sighting) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	s.ID = m.NextID
	m.NextID++
	m.Items = append(m.Items, s)
	return nil
}

func (m *MockSightingRepository) Update(ctx context.Context, id int64, p *models.SightingPatch) (int64, error) {
	if m.UpdateRows != nil {
		return *m.UpdateRows, nil
	}
	for _, s := range m.Items {
		if s.ID == id {
			if p.Latitude != nil {
				s.Latitude = *p.Latitude
			}
			if p.Longitude != nil {
				s.Longitude = *p.Longitude
			}
			if p.Category != nil {
				s.Category = *p.Category
			}
			if p.Source != nil {
				s.Source = *p.Source
			}
			if p.Description != nil {
				s.Description = p.Description
			}
			if p.ReportDate != nil {
				s.ReportDate = *p.ReportDate
			}
			return 1, nil
		}
	}
	return 0, nil
}

func (m *MockSightingRepository) Delete(ctx context.Context, id int64) (int64, error) {
	if m.DeleteRows != nil {
		return *m.DeleteRows, nil
	}
	for i, s := range m.Items {
		if s.ID == id {
			m.Items = append(m.Items[:i], m.Items[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// MockRiskAreaRepository is a mock implementation of RiskAreaRepository
type MockRiskAreaRepository struct {
	Items       []*models.RiskArea
	NextID      int64
	CreateError error
}

var _ repository.RiskAreaRepository = (*MockRiskAreaRepository)(nil)

func NewMockRiskAreaRepository() *MockRiskAreaRepository {
	return &MockRiskAreaRepository{NextID: 1}
}

func (m *MockRiskAreaRepository) List(ctx context.Context, severity string, opts repository.ListOptions) ([]*models.RiskArea, error) {
	filtered := []*models.RiskArea{}
	for i := len(m.Items) - 1; i >= 0; i-- {
		a := m.Items[i]
		if severity == "" || a.Severity == severity {
			filtered = append(filtered, a)
		}
	}
	return paginate(filtered, opts), nil
}

func (m *MockRiskAreaRepository) GetByID(ctx context.Context, id int64) (*models.RiskArea, error) {
	for _, a := range m.Items {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (m *MockRiskAreaRepository) Create(ctx context.Context, a *models.RiskArea) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	a.ID = m.NextID
	m.NextID++
	m.Items = append(m.Items, a)
	return nil
}

func (m *MockRiskAreaRepository) Update(ctx context.Context, id int64, p *models.RiskAreaPatch) (int64, error) {
	for _, a := range m.Items {
		if a.ID == id {
			if p.Latitude != nil {
				a.Latitude = *p.Latitude
			}
			if p.Longitude != nil {
				a.Longitude = *p.Longitude
			}
			if p.Severity != nil {
				a.Severity = *p.Severity
			}
			if p.Radius != nil {
				a.Radius = *p.Radius
			}
			if p.Description != nil {
				a.Description = p.Description
			}
			if p.ReportDate != nil {
				a.ReportDate = *p.ReportDate
			}
			return 1, nil
		}
	}
	return 0, nil
}

func (m *MockRiskAreaRepository) Delete(ctx context.Context, id int64) (int64, error) {
	for i, a := range m.Items {
		if a.ID == id {
			m.Items = append(m.Items[:i], m.Items[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// MockCaseRepository is a mock implementation of CaseRepository
type MockCaseRepository struct {
	Items       []*models.Case
	NextID      int64
	CreateError error
	Stats       []models.CaseStats
}

var _ repository.CaseRepository = (*MockCaseRepository)(nil)

func NewMockCaseRepository() *MockCaseRepository {
	return &MockCaseRepository{NextID: 1}
}

func (m *MockCaseRepository) List(ctx context.Context, status string, opts repository.ListOptions) ([]*models.Case, error) {
	filtered := []*models.Case{}
	for i := len(m.Items) - 1; i >= 0; i-- {
		c := m.Items[i]
		if status == "" || c.Status == status {
			filtered = append(filtered, c)
		}
	}
	return paginate(filtered, opts), nil
}

func (m *MockCaseRepository) GetByID(ctx context.Context, id int64) (*models.Case, error) {
	for _, c := range m.Items {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (m *MockCaseRepository) Create(ctx context.Context, c *models.Case) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	c.ID = m.NextID
	m.NextID++
	m.Items = append(m.Items, c)
	return nil
}

func (m *MockCaseRepository) Update(ctx context.Context, id int64, p *models.CasePatch) (int64, error) {
	for _, c := range m.Items {
		if c.ID == id {
			if p.Latitude != nil {
				c.Latitude = *p.Latitude
			}
			if p.Longitude != nil {
				c.Longitude = *p.Longitude
			}
			if p.Status != nil {
				c.Status = *p.Status
			}
			if p.Description != nil {
				c.Description = p.Description
			}
			if p.ReportDate != nil {
				c.ReportDate = *p.ReportDate
			}
			return 1, nil
		}
	}
	return 0, nil
}

func (m *MockCaseRepository) Delete(ctx context.Context, id int64) (int64, error) {
	for i, c := range m.Items {
		if c.ID == id {
			m.Items = append(m.Items[:i], m.Items[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (m *MockCaseRepository) StatsSummary(ctx context.Context) ([]models.CaseStats, error) {
	return m.Stats, nil
}

// MockNotificationRepository is a mock implementation of NotificationRepository
type MockNotificationRepository struct {
	Items       []*models.Notification
	NextID      int64
	CreateError error
	CreateCalls int
}

var _ repository.NotificationRepository = (*MockNotificationRepository)(nil)

func NewMockNotificationRepository() *MockNotificationRepository {
	return &MockNotificationRepository{NextID: 1}
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	m.CreateCalls++
	if m.CreateError != nil {
		return m.CreateError
	}
	n.ID = m.NextID
	m.NextID++
	m.Items = append(m.Items, n)
	return nil
}

func visibleTo(n *models.Notification, userID int64) bool {
	return n.UserID == nil || *n.UserID == userID
}

func (m *MockNotificationRepository) ListForUser(ctx context.Context, userID int64, read *bool) ([]*models.Notification, error) {
	out := []*models.Notification{}
	for i := len(m.Items) - 1; i >= 0; i-- {
		n := m.Items[i]
		if !visibleTo(n, userID) {
			continue
		}
		if read != nil && n.Read != *read {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id, userID int64) (int64, error) {
	for _, n := range m.Items {
		if n.ID == id && visibleTo(n, userID) {
			n.Read = true
			return 1, nil
		}
	}
	return 0, nil
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	var affected int64
	for _, n := range m.Items {
		if visibleTo(n, userID) && !n.Read {
			n.Read = true
			affected++
		}
	}
	return affected, nil
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, userID int64) (int, error) {
	count := 0
	for _, n := range m.Items {
		if visibleTo(n, userID) && !n.Read {
			count++
		}
	}
	return count, nil
}

// paginate mirrors the repositories' limit/offset clamping
func paginate[T any](items []T, opts repository.ListOptions) []T {
	limit := opts.Limit
	if limit <= 0 {
		limit = repository.DefaultListLimit
	}
	if limit > repository.MaxListLimit {
		limit = repository.MaxListLimit
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
