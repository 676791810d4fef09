package notifier

import (
	"fmt"
	"github.com/asaskevich/EventBus"
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/talentflow/ats/internal/domain/events"
	"github.com/talentflow/ats/internal/logger"
)

type sender interface {
	Send(c botApi.Chattable) (botApi.Message, error)
}

// Telegram posts candidate stage changes to a single chat.
type Telegram struct {
	api    sender
	chatID int64
	bus    EventBus.Bus
}

func NewTelegram(token string, chatID int64, bus EventBus.Bus) (*Telegram, error) {
	api, err := botApi.NewBotAPI(token)
	if err != nil {
		return nil, errors.Wrap(err, "failed to authorize telegram bot")
	}
	log.Infof("Authorized on account %s", api.Self.UserName)

	if err = botApi.SetLogger(log.StandardLogger()); err != nil {
		return nil, err
	}
	return newTelegram(api, chatID, bus)
}

func newTelegram(api sender, chatID int64, bus EventBus.Bus) (*Telegram, error) {
	if bus == nil {
		return nil, errors.New("bus is nil")
	}

	t := &Telegram{api: api, chatID: chatID, bus: bus}
	if err := bus.SubscribeAsync(events.CandidateStageChangedTopic, t.onStageChanged, false); err != nil {
		return nil, err
	}
	return t, nil
}

// Close stops listening and waits for notifications already queued.
func (t *Telegram) Close() error {
	err := t.bus.Unsubscribe(events.CandidateStageChangedTopic, t.onStageChanged)
	t.bus.WaitAsync()
	return err
}

func (t *Telegram) onStageChanged(event events.CandidateStageChanged) {
	name := event.Candidate.FullName()
	if name == "" {
		name = event.Candidate.ID
	}

	msg := botApi.NewMessage(t.chatID, fmt.Sprintf("Candidate %s moved from %s to %s", name, event.From, event.To))
	if _, err := t.api.Send(msg); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeNotifier).Errorf("error occurred while sending message: %v", err)
	}
}
