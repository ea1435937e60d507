package learner

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/lingo-backend/internal/domain"
)

// learnerRepoMock is a moq-style mock of learnerRepo.
type learnerRepoMock struct {
	GetByIDFunc          func(ctx context.Context, id uuid.UUID) (domain.Learner, error)
	RegisterFunc         func(ctx context.Context, id uuid.UUID, username string, role domain.Role) (domain.Learner, error)
	UpdatePreferenceFunc func(ctx context.Context, id uuid.UUID, p domain.LearnerPreference) (domain.Learner, error)
	UpdateDailyFunc      func(ctx context.Context, id uuid.UUID, d domain.DailySettings) (domain.Learner, error)
	UpdateRoleFunc       func(ctx context.Context, id uuid.UUID, role domain.Role) error
	ListDailyEnabledFunc func(ctx context.Context) ([]domain.Learner, error)

	mu    sync.Mutex
	calls struct {
		GetByID          []uuid.UUID
		UpdatePreference []domain.LearnerPreference
		UpdateDaily      []domain.DailySettings
		UpdateRole       []domain.Role
	}
}

func (m *learnerRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.Learner, error) {
	m.mu.Lock()
	m.calls.GetByID = append(m.calls.GetByID, id)
	m.mu.Unlock()
	if m.GetByIDFunc == nil {
		panic("learnerRepoMock.GetByIDFunc: method is nil but learnerRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *learnerRepoMock) GetByIDCalls() []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.GetByID
}

func (m *learnerRepoMock) Register(ctx context.Context, id uuid.UUID, username string, role domain.Role) (domain.Learner, error) {
	if m.RegisterFunc == nil {
		panic("learnerRepoMock.RegisterFunc: method is nil but learnerRepo.Register was just called")
	}
	return m.RegisterFunc(ctx, id, username, role)
}

func (m *learnerRepoMock) UpdatePreference(ctx context.Context, id uuid.UUID, p domain.LearnerPreference) (domain.Learner, error) {
	m.mu.Lock()
	m.calls.UpdatePreference = append(m.calls.UpdatePreference, p)
	m.mu.Unlock()
	if m.UpdatePreferenceFunc == nil {
		return domain.Learner{ID: id, Preference: p}, nil
	}
	return m.UpdatePreferenceFunc(ctx, id, p)
}

func (m *learnerRepoMock) UpdatePreferenceCalls() []domain.LearnerPreference {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.UpdatePreference
}

func (m *learnerRepoMock) UpdateDaily(ctx context.Context, id uuid.UUID, d domain.DailySettings) (domain.Learner, error) {
	m.mu.Lock()
	m.calls.UpdateDaily = append(m.calls.UpdateDaily, d)
	m.mu.Unlock()
	if m.UpdateDailyFunc == nil {
		return domain.Learner{ID: id, Daily: d}, nil
	}
	return m.UpdateDailyFunc(ctx, id, d)
}

func (m *learnerRepoMock) UpdateDailyCalls() []domain.DailySettings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.UpdateDaily
}

func (m *learnerRepoMock) UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) error {
	m.mu.Lock()
	m.calls.UpdateRole = append(m.calls.UpdateRole, role)
	m.mu.Unlock()
	if m.UpdateRoleFunc == nil {
		return nil
	}
	return m.UpdateRoleFunc(ctx, id, role)
}

func (m *learnerRepoMock) UpdateRoleCalls() []domain.Role {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.UpdateRole
}

func (m *learnerRepoMock) ListDailyEnabled(ctx context.Context) ([]domain.Learner, error) {
	if m.ListDailyEnabledFunc == nil {
		return nil, nil
	}
	return m.ListDailyEnabledFunc(ctx)
}

// exposureCounterMock is a moq-style mock of exposureCounter.
type exposureCounterMock struct {
	CountFunc func(ctx context.Context, learnerID uuid.UUID) (int, error)
}

func (m *exposureCounterMock) Count(ctx context.Context, learnerID uuid.UUID) (int, error) {
	if m.CountFunc == nil {
		return 0, nil
	}
	return m.CountFunc(ctx, learnerID)
}

// txManagerMock runs the callback inline.
type txManagerMock struct{}

func (txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
