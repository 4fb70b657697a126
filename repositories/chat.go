//go:generate go run go.uber.org/mock/mockgen -source=chat.go -destination=../mocks/mock_chat_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"procdesk/domain"
	"procdesk/storage"
)

type IChatRepository interface {
	Save(message domain.ChatMessage) error
	GetByProcess(processID string) ([]domain.ChatMessage, error)
}

type ChatRepository struct {
	store storage.Engine
	log   *slog.Logger
}

func NewChatRepository(store storage.Engine, log *slog.Logger) ChatRepository {
	return ChatRepository{store: store, log: log}
}

func (r ChatRepository) Save(message domain.ChatMessage) error {
	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("marshal chat message %s: %w", message.ID, err)
	}
	return r.store.Put(storage.CollectionChats, storage.Record{
		ID:        message.ID,
		CreatedAt: message.CreatedAt,
		Indexed: map[string]string{
			storage.IndexProcessID: message.ProcessID,
		},
		Data: data,
	})
}

func (r ChatRepository) GetByProcess(processID string) ([]domain.ChatMessage, error) {
	records, err := r.store.GetAllByIndex(storage.CollectionChats, storage.IndexProcessID, processID)
	if err != nil {
		return nil, err
	}
	messages := make([]domain.ChatMessage, 0, len(records))
	for _, rec := range records {
		var message domain.ChatMessage
		if err := json.Unmarshal(rec.Data, &message); err != nil {
			return nil, fmt.Errorf("unmarshal chat message %s: %w", rec.ID, err)
		}
		messages = append(messages, message)
	}
	return messages, nil
}
