package mocks

import (
	"context"

	"github.com/dengue-surveillance-api/internal/auth"
	"github.com/dengue-surveillance-api/internal/customerrors"
	"github.com/dengue-surveillance-api/internal/models"
	"github.com/dengue-surveillance-api/internal/service"
)

// MockAuthService is a mock implementation of AuthService. Tokens maps
// accepted bearer tokens to the claims they decode to.
type MockAuthService struct {
	Tokens       map[string]*auth.Claims
	LoginFunc    func(ctx context.Context, req *models.LoginRequest) (*models.LoginResult, error)
	RegisterFunc func(ctx context.Context, req *models.RegisterRequest) (*models.UserSummary, error)
	SeedCalls    int
}

// Verify interface compliance
var _ service.AuthService = (*MockAuthService)(nil)

func NewMockAuthService() *MockAuthService {
	return &MockAuthService{Tokens: make(map[string]*auth.Claims)}
}

func (m *MockAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	return nil, customerrors.ErrInvalidCredentials
}

func (m *MockAuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.UserSummary, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	return &models.UserSummary{ID: 99, Name: req.Name, Email: req.Email, Role: req.Role}, nil
}

func (m *MockAuthService) Verify(token string) (*auth.Claims, error) {
	if claims, ok := m.Tokens[token]; ok {
		return claims, nil
	}
	return nil, customerrors.ErrInvalidToken
}

func (m *MockAuthService) EnsureDefaultUsers(ctx context.Context) error {
	m.SeedCalls++
	return nil
}

// MockNotificationService is a mock implementation of NotificationService
type MockNotificationService struct {
	NotifiedAreas []*models.RiskArea
	NotifyError   error
	Items         []*models.Notification
	MarkReadErr   error
	AllReadCount  int64
	UnreadCount   int
}

var _ service.NotificationService = (*MockNotificationService)(nil)

func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

func (m *MockNotificationService) NotifyRiskArea(ctx context.Context, area *models.RiskArea) error {
	if m.NotifyError != nil {
		return m.NotifyError
	}
	m.NotifiedAreas = append(m.NotifiedAreas, area)
	return nil
}

func (m *MockNotificationService) List(ctx context.Context, userID int64, read *bool) ([]*models.Notification, error) {
	out := []*models.Notification{}
	for _, n := range m.Items {
		if n.UserID != nil && *n.UserID != userID {
			continue
		}
		if read != nil && n.Read != *read {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (m *MockNotificationService) MarkRead(ctx context.Context, id, userID int64) error {
	if m.MarkReadErr != nil {
		return m.MarkReadErr
	}
	for _, n := range m.Items {
		if n.ID == id {
			n.Read = true
			return nil
		}
	}
	return customerrors.ErrNotificationNotFound
}

func (m *MockNotificationService) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	return m.AllReadCount, nil
}

func (m *MockNotificationService) CountUnread(ctx context.Context, userID int64) (int, error) {
	return m.UnreadCount, nil
}
