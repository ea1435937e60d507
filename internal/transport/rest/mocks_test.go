package rest

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/lingo-backend/internal/domain"
	"github.com/heartmarshall/lingo-backend/internal/service/acquisition"
	"github.com/heartmarshall/lingo-backend/internal/service/conversation"
	"github.com/heartmarshall/lingo-backend/internal/service/dictionary"
	"github.com/heartmarshall/lingo-backend/internal/service/learner"
)

type acquisitionServiceMock struct {
	AddWordFunc   func(ctx context.Context, input acquisition.AddWordInput) (acquisition.AddWordResult, error)
	AddWordsFunc  func(ctx context.Context, input acquisition.AddWordsInput) (acquisition.BulkAddResult, error)
	AddManualFunc func(ctx context.Context, input acquisition.ManualInput) (acquisition.AddWordResult, error)
}

func (m *acquisitionServiceMock) AddWord(ctx context.Context, input acquisition.AddWordInput) (acquisition.AddWordResult, error) {
	return m.AddWordFunc(ctx, input)
}

func (m *acquisitionServiceMock) AddWords(ctx context.Context, input acquisition.AddWordsInput) (acquisition.BulkAddResult, error) {
	return m.AddWordsFunc(ctx, input)
}

func (m *acquisitionServiceMock) AddManual(ctx context.Context, input acquisition.ManualInput) (acquisition.AddWordResult, error) {
	return m.AddManualFunc(ctx, input)
}

type catalogServiceMock struct {
	ListEntriesFunc   func(ctx context.Context, input dictionary.ListInput) (*dictionary.ListResult, error)
	ClearMineFunc     func(ctx context.Context) (int64, error)
	ImportEntriesFunc func(ctx context.Context, input dictionary.ImportInput) (*dictionary.ImportResult, error)
	EditFieldFunc     func(ctx context.Context, input dictionary.EditFieldInput) (domain.Entry, error)
	ClearCatalogFunc  func(ctx context.Context, topic string) (int64, error)
	ExportEntriesFunc func(ctx context.Context, topic string) (*dictionary.ExportResult, error)
}

func (m *catalogServiceMock) ListEntries(ctx context.Context, input dictionary.ListInput) (*dictionary.ListResult, error) {
	return m.ListEntriesFunc(ctx, input)
}

func (m *catalogServiceMock) ClearMine(ctx context.Context) (int64, error) {
	return m.ClearMineFunc(ctx)
}

func (m *catalogServiceMock) ImportEntries(ctx context.Context, input dictionary.ImportInput) (*dictionary.ImportResult, error) {
	return m.ImportEntriesFunc(ctx, input)
}

func (m *catalogServiceMock) EditField(ctx context.Context, input dictionary.EditFieldInput) (domain.Entry, error) {
	return m.EditFieldFunc(ctx, input)
}

func (m *catalogServiceMock) ClearCatalog(ctx context.Context, topic string) (int64, error) {
	return m.ClearCatalogFunc(ctx, topic)
}

func (m *catalogServiceMock) ExportEntries(ctx context.Context, topic string) (*dictionary.ExportResult, error) {
	return m.ExportEntriesFunc(ctx, topic)
}

type selectorServiceMock struct {
	PickFunc      func(ctx context.Context) (domain.Entry, error)
	PickDailyFunc func(ctx context.Context, learnerID uuid.UUID) ([]domain.Entry, error)
}

func (m *selectorServiceMock) Pick(ctx context.Context) (domain.Entry, error) {
	return m.PickFunc(ctx)
}

func (m *selectorServiceMock) PickDaily(ctx context.Context, learnerID uuid.UUID) ([]domain.Entry, error) {
	return m.PickDailyFunc(ctx, learnerID)
}

type learnerServiceMock struct {
	RegisterFunc          func(ctx context.Context, input learner.RegisterInput) (domain.Learner, error)
	GetProfileFunc        func(ctx context.Context) (*learner.Profile, error)
	UpdatePreferencesFunc func(ctx context.Context, input learner.UpdatePreferencesInput) (domain.Learner, error)
	UpdateDailyFunc       func(ctx context.Context, input learner.UpdateDailyInput) (domain.Learner, error)
	SetRoleFunc           func(ctx context.Context, targetID uuid.UUID, role domain.Role) error
	DailyRecipientsFunc   func(ctx context.Context) ([]domain.Learner, error)
}

func (m *learnerServiceMock) Register(ctx context.Context, input learner.RegisterInput) (domain.Learner, error) {
	return m.RegisterFunc(ctx, input)
}

func (m *learnerServiceMock) GetProfile(ctx context.Context) (*learner.Profile, error) {
	return m.GetProfileFunc(ctx)
}

func (m *learnerServiceMock) UpdatePreferences(ctx context.Context, input learner.UpdatePreferencesInput) (domain.Learner, error) {
	return m.UpdatePreferencesFunc(ctx, input)
}

func (m *learnerServiceMock) UpdateDaily(ctx context.Context, input learner.UpdateDailyInput) (domain.Learner, error) {
	return m.UpdateDailyFunc(ctx, input)
}

func (m *learnerServiceMock) SetRole(ctx context.Context, targetID uuid.UUID, role domain.Role) error {
	return m.SetRoleFunc(ctx, targetID, role)
}

func (m *learnerServiceMock) DailyRecipients(ctx context.Context) ([]domain.Learner, error) {
	return m.DailyRecipientsFunc(ctx)
}

type conversationServiceMock struct {
	StepFunc func(ctx context.Context, draft domain.ManualAddDraft, input string) (conversation.StepResult, error)
}

func (m *conversationServiceMock) Start() conversation.StepResult {
	d := domain.NewManualAddDraft()
	return conversation.StepResult{Draft: d, Prompt: d.Prompt()}
}

func (m *conversationServiceMock) Step(ctx context.Context, draft domain.ManualAddDraft, input string) (conversation.StepResult, error) {
	return m.StepFunc(ctx, draft, input)
}
