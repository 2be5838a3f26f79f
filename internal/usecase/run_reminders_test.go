package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/xavierca1/prospect-crm/internal/entity"
	"github.com/xavierca1/prospect-crm/internal/infra/queue"
)

// MockProspectRepository
type MockProspectRepository struct {
	mock.Mock
}

func (m *MockProspectRepository) List(ctx context.Context) ([]entity.Prospect, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Prospect), args.Error(1)
}

func (m *MockProspectRepository) FindByID(ctx context.Context, id string) (*entity.Prospect, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Prospect), args.Error(1)
}

func (m *MockProspectRepository) Create(ctx context.Context, p *entity.Prospect) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProspectRepository) Update(ctx context.Context, p *entity.Prospect) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProspectRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProspectRepository) MarkReminded(ctx context.Context, ids []string, day time.Time) error {
	args := m.Called(ctx, ids, day)
	return args.Error(0)
}

// MockSettingsRepository
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) GetReminderFrequency(ctx context.Context) entity.Frequency {
	args := m.Called(ctx)
	return args.Get(0).(entity.Frequency)
}

func (m *MockSettingsRepository) SetReminderFrequency(ctx context.Context, f entity.Frequency) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendDigest(to, subject, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}

func (m *MockEmailService) SendFollowUpUpdated(to, firstName, lastName, company, followUpDate string) error {
	args := m.Called(to, firstName, lastName, company, followUpDate)
	return args.Error(0)
}

// MockQueueProducer
type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishFollowUpUpdated(ctx context.Context, payload queue.FollowUpUpdatedPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func newRunUseCase(repo *MockProspectRepository, settings *MockSettingsRepository, email *MockEmailService) *RunRemindersUseCase {
	uc := NewRunRemindersUseCase(repo, settings, email, time.UTC)
	uc.Now = func() time.Time { return today.Add(15 * time.Hour) } // 15h de 2025-03-12
	return uc
}

// ============ TESTES ============

// TestRunRemindersEndToEnd - cenário completo: overdue + próximo vão num
// digest só, fora da janela fica de fora, lote é marcado depois do envio.
func TestRunRemindersEndToEnd(t *testing.T) {
	ctx := context.Background()

	repo := new(MockProspectRepository)
	settings := new(MockSettingsRepository)
	email := new(MockEmailService)

	rows := []entity.Prospect{
		prospectDue("1", "Ana", "Souza", "Acme", "a@x.com", datePtr(today.AddDate(0, 0, -1))),
		prospectDue("2", "Bruno", "Lima", "Globex", "a@x.com", datePtr(today.AddDate(0, 0, 3))),
		prospectDue("3", "Carla", "Dias", "Initech", "b@x.com", datePtr(today.AddDate(0, 0, 10))), // fora da janela
	}

	settings.On("GetReminderFrequency", ctx).Return(entity.FrequencyDaily)
	repo.On("List", ctx).Return(rows, nil)
	email.On("SendDigest", "a@x.com", DigestSubject, mock.Anything).Return(nil)
	repo.On("MarkReminded", mock.Anything, []string{"1", "2"}, today).Return(nil)

	uc := newRunUseCase(repo, settings, email)
	out, err := uc.Execute(ctx)

	assert.NoError(t, err)
	assert.True(t, out.Ran)
	assert.Equal(t, 1, out.Sent)
	assert.Equal(t, 0, out.Failed)
	assert.Len(t, out.Recipients, 1)
	assert.Equal(t, "a@x.com", out.Recipients[0].Recipient)
	assert.Equal(t, 2, out.Recipients[0].Prospects)
	assert.Equal(t, OutcomeSent, out.Recipients[0].Result)

	// Uma mensagem só, com as duas linhas na ordem de leitura
	email.AssertNumberOfCalls(t, "SendDigest", 1)
	sentBody := email.Calls[0].Arguments.String(2)
	assert.Contains(t, sentBody, "- Ana Souza @ Acme  [OVERDUE]")
	assert.Contains(t, sentBody, "- Bruno Lima @ Globex  [Due 2025-03-15]")
	assert.NotContains(t, sentBody, "Carla")

	// b@x.com não recebe nada e o prospect 3 não é marcado
	email.AssertNotCalled(t, "SendDigest", "b@x.com", mock.Anything, mock.Anything)
	repo.AssertCalled(t, "MarkReminded", mock.Anything, []string{"1", "2"}, today)
}

// TestRunRemindersSkippedWhenOff
func TestRunRemindersSkippedWhenOff(t *testing.T) {
	ctx := context.Background()

	repo := new(MockProspectRepository)
	settings := new(MockSettingsRepository)
	email := new(MockEmailService)

	settings.On("GetReminderFrequency", ctx).Return(entity.FrequencyOff)

	uc := newRunUseCase(repo, settings, email)
	out, err := uc.Execute(ctx)

	assert.NoError(t, err)
	assert.False(t, out.Ran)
	assert.NotEmpty(t, out.SkipReason)
	repo.AssertNotCalled(t, "List", mock.Anything)
	email.AssertNotCalled(t, "SendDigest", mock.Anything, mock.Anything, mock.Anything)
}

// TestRunRemindersWeeklySkipsOutsideMonday - 2025-03-12 é quarta
func TestRunRemindersWeeklySkipsOutsideMonday(t *testing.T) {
	ctx := context.Background()

	repo := new(MockProspectRepository)
	settings := new(MockSettingsRepository)
	email := new(MockEmailService)

	settings.On("GetReminderFrequency", ctx).Return(entity.FrequencyWeekly)

	uc := newRunUseCase(repo, settings, email)
	out, err := uc.Execute(ctx)

	assert.NoError(t, err)
	assert.False(t, out.Ran)
	repo.AssertNotCalled(t, "List", mock.Anything)
}

// TestRunRemindersListFailureAbortsCleanly - nada processado, erro reportado
func TestRunRemindersListFailureAbortsCleanly(t *testing.T) {
	ctx := context.Background()

	repo := new(MockProspectRepository)
	settings := new(MockSettingsRepository)
	email := new(MockEmailService)

	settings.On("GetReminderFrequency", ctx).Return(entity.FrequencyDaily)
	repo.On("List", ctx).Return(nil, errors.New("supabase fora do ar"))

	uc := newRunUseCase(repo, settings, email)
	out, err := uc.Execute(ctx)

	assert.Error(t, err)
	assert.True(t, out.Ran)
	assert.Empty(t, out.Recipients)
	assert.Zero(t, out.Sent)
	email.AssertNotCalled(t, "SendDigest", mock.Anything, mock.Anything, mock.Anything)
}

// TestRunRemindersSendFailureIsIsolated - falha de um destinatário não marca
// as linhas dele e não derruba os demais
func TestRunRemindersSendFailureIsIsolated(t *testing.T) {
	ctx := context.Background()

	repo := new(MockProspectRepository)
	settings := new(MockSettingsRepository)
	email := new(MockEmailService)

	rows := []entity.Prospect{
		prospectDue("1", "Ana", "Souza", "Acme", "a@x.com", datePtr(today)),
		prospectDue("2", "Bruno", "Lima", "Globex", "b@x.com", datePtr(today)),
	}

	settings.On("GetReminderFrequency", ctx).Return(entity.FrequencyDaily)
	repo.On("List", ctx).Return(rows, nil)
	email.On("SendDigest", "a@x.com", mock.Anything, mock.Anything).Return(errors.New("smtp timeout"))
	email.On("SendDigest", "b@x.com", mock.Anything, mock.Anything).Return(nil)
	repo.On("MarkReminded", mock.Anything, []string{"2"}, today).Return(nil)

	uc := newRunUseCase(repo, settings, email)
	out, err := uc.Execute(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 1, out.Sent)
	assert.Equal(t, 1, out.Failed)
	assert.Equal(t, OutcomeSendFailed, out.Recipients[0].Result)
	assert.Equal(t, OutcomeSent, out.Recipients[1].Result)

	// As linhas de a@x.com ficam SEM marcação (reenvio no próximo run)
	repo.AssertNotCalled(t, "MarkReminded", mock.Anything, []string{"1"}, mock.Anything)
	repo.AssertCalled(t, "MarkReminded", mock.Anything, []string{"2"}, today)
}

// TestRunRemindersMarkFailureIsReportedDistinctly - enviado mas não marcado:
// duplicata-no-próximo-run, nunca lembrete perdido
func TestRunRemindersMarkFailureIsReportedDistinctly(t *testing.T) {
	ctx := context.Background()

	repo := new(MockProspectRepository)
	settings := new(MockSettingsRepository)
	email := new(MockEmailService)

	rows := []entity.Prospect{
		prospectDue("1", "Ana", "Souza", "Acme", "a@x.com", datePtr(today)),
	}

	settings.On("GetReminderFrequency", ctx).Return(entity.FrequencyDaily)
	repo.On("List", ctx).Return(rows, nil)
	email.On("SendDigest", "a@x.com", mock.Anything, mock.Anything).Return(nil)
	repo.On("MarkReminded", mock.Anything, []string{"1"}, today).Return(errors.New("update falhou"))

	uc := newRunUseCase(repo, settings, email)
	out, err := uc.Execute(ctx)

	assert.NoError(t, err)
	assert.Equal(t, OutcomeMarkFailed, out.Recipients[0].Result)
	assert.Equal(t, 1, out.Failed)
}

// TestRunRemindersRemindedTodayExcluded - gate de uma-vez-por-dia num rerun
func TestRunRemindersRemindedTodayExcluded(t *testing.T) {
	ctx := context.Background()

	repo := new(MockProspectRepository)
	settings := new(MockSettingsRepository)
	email := new(MockEmailService)

	alreadyReminded := prospectDue("1", "Ana", "Souza", "Acme", "a@x.com", datePtr(today))
	alreadyReminded.LastRemindedOn = datePtr(today)

	settings.On("GetReminderFrequency", ctx).Return(entity.FrequencyDaily)
	repo.On("List", ctx).Return([]entity.Prospect{alreadyReminded}, nil)

	uc := newRunUseCase(repo, settings, email)
	out, err := uc.Execute(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 1, out.DueCount) // continua devido...
	assert.Empty(t, out.Recipients)  // ...mas ninguém recebe de novo hoje
	email.AssertNotCalled(t, "SendDigest", mock.Anything, mock.Anything, mock.Anything)
}
