//go:generate go run go.uber.org/mock/mockgen -source=feedback.go -destination=../mocks/mock_feedback_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"procdesk/domain"
	"procdesk/storage"
)

type IFeedbackRepository interface {
	Save(comment domain.FeedbackComment) error
	GetByProcess(processID string) ([]domain.FeedbackComment, error)
}

type FeedbackRepository struct {
	store storage.Engine
	log   *slog.Logger
}

func NewFeedbackRepository(store storage.Engine, log *slog.Logger) FeedbackRepository {
	return FeedbackRepository{store: store, log: log}
}

func (r FeedbackRepository) Save(comment domain.FeedbackComment) error {
	data, err := json.Marshal(comment)
	if err != nil {
		return fmt.Errorf("marshal feedback %s: %w", comment.ID, err)
	}
	return r.store.Put(storage.CollectionFeedback, storage.Record{
		ID:        comment.ID,
		CreatedAt: comment.CreatedAt,
		Indexed: map[string]string{
			storage.IndexProcessID: comment.ProcessID,
		},
		Data: data,
	})
}

func (r FeedbackRepository) GetByProcess(processID string) ([]domain.FeedbackComment, error) {
	records, err := r.store.GetAllByIndex(storage.CollectionFeedback, storage.IndexProcessID, processID)
	if err != nil {
		return nil, err
	}
	comments := make([]domain.FeedbackComment, 0, len(records))
	for _, rec := range records {
		var comment domain.FeedbackComment
		if err := json.Unmarshal(rec.Data, &comment); err != nil {
			return nil, fmt.Errorf("unmarshal feedback %s: %w", rec.ID, err)
		}
		comments = append(comments, comment)
	}
	return comments, nil
}
