package notifier

import (
	"github.com/asaskevich/EventBus"
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/talentflow/ats/internal/domain/events"
	"github.com/talentflow/ats/internal/domain/models"
	"testing"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(c botApi.Chattable) (botApi.Message, error) {
	args := m.Called(c)
	return botApi.Message{}, args.Error(0)
}

func textTo(chatID int64, text string) interface{} {
	return mock.MatchedBy(func(c botApi.Chattable) bool {
		msg, ok := c.(botApi.MessageConfig)
		return ok && msg.ChatID == chatID && msg.Text == text
	})
}

func Test_Telegram_SendsStageChange(t *testing.T) {
	api := &mockSender{}
	api.On("Send", textTo(42, "Candidate Ada Lovelace moved from applied to interview")).Return(nil).Once()

	bus := EventBus.New()
	tg, err := newTelegram(api, 42, bus)
	require.NoError(t, err)

	bus.Publish(events.CandidateStageChangedTopic, events.CandidateStageChanged{
		Candidate: models.Candidate{ID: "c1", FirstName: "Ada", LastName: "Lovelace"},
		From:      models.StageApplied,
		To:        models.StageInterview,
	})
	require.NoError(t, tg.Close())

	api.AssertExpectations(t)
}

func Test_Telegram_FallsBackToIDAndSurvivesSendError(t *testing.T) {
	api := &mockSender{}
	api.On("Send", textTo(7, "Candidate c9 moved from offer to hired")).Return(errors.New("forbidden")).Once()

	bus := EventBus.New()
	tg, err := newTelegram(api, 7, bus)
	require.NoError(t, err)

	bus.Publish(events.CandidateStageChangedTopic, events.CandidateStageChanged{
		Candidate: models.Candidate{ID: "c9"},
		From:      models.StageOffer,
		To:        models.StageHired,
	})
	require.NoError(t, tg.Close())

	api.AssertExpectations(t)
}

func Test_Telegram_StopsAfterClose(t *testing.T) {
	api := &mockSender{}
	bus := EventBus.New()
	tg, err := newTelegram(api, 1, bus)
	require.NoError(t, err)
	require.NoError(t, tg.Close())

	bus.Publish(events.CandidateStageChangedTopic, events.CandidateStageChanged{})
	bus.WaitAsync()

	api.AssertNotCalled(t, "Send", mock.Anything)
}

func Test_NewTelegram_RequiresBus(t *testing.T) {
	_, err := newTelegram(&mockSender{}, 1, nil)
	assert.Error(t, err)
}
