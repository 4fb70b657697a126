package services

import (
	"context"
	"log/slog"

	"github.com/blugelabs/bluge"

	"procdesk/domain"
)

type ISearchService interface {
	Index(doc domain.ProcessDocument) error
	Remove(id string) error
	Search(ctx context.Context, term string, limit int) ([]string, error)
}

// SearchService maintains a full-text index over process documents so the
// UI can find a process by title, description, industry or department.
type SearchService struct {
	writer *bluge.Writer
	log    *slog.Logger
}

func NewSearchService(writer *bluge.Writer, log *slog.Logger) *SearchService {
	return &SearchService{writer: writer, log: log}
}

func (s *SearchService) Index(doc domain.ProcessDocument) error {
	description := ""
	if doc.Payload != nil {
		description = doc.Payload.Description
	}
	indexed := bluge.NewDocument(doc.ID).
		AddField(bluge.NewTextField("title", doc.Title).StoreValue()).
		AddField(bluge.NewTextField("description", description)).
		AddField(bluge.NewKeywordField("industry", doc.Industry)).
		AddField(bluge.NewKeywordField("department", doc.Department))
	return s.writer.Update(indexed.ID(), indexed)
}

func (s *SearchService) Remove(id string) error {
	return s.writer.Delete(bluge.Identifier(id))
}

// Search returns the ids of the best-matching documents, most relevant
// first.
func (s *SearchService) Search(ctx context.Context, term string, limit int) ([]string, error) {
	reader, err := s.writer.Reader()
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	query := bluge.NewBooleanQuery().AddShould(
		bluge.NewMatchQuery(term).SetField("title"),
		bluge.NewMatchQuery(term).SetField("description"),
		bluge.NewTermQuery(term).SetField("industry"),
		bluge.NewTermQuery(term).SetField("department"),
	)
	iterator, err := reader.Search(ctx, bluge.NewTopNSearch(limit, query))
	if err != nil {
		return nil, err
	}

	var ids []string
	for {
		match, err := iterator.Next()
		if err != nil {
			return nil, err
		}
		if match == nil {
			break
		}
		err = match.VisitStoredFields(func(field string, value []byte) bool {
			if field == "_id" {
				ids = append(ids, string(value))
			}
			return true
		})
		if err != nil {
			return nil, err
		}
	}
	return ids, nil
}
