package services

import (
	"context"
	"log/slog"
	"testing"

	"github.com/blugelabs/bluge"
	"github.com/stretchr/testify/require"

	"procdesk/domain"
)

func newSearchService(t *testing.T) *SearchService {
	t.Helper()
	writer, err := bluge.OpenWriter(bluge.DefaultConfig(t.TempDir()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = writer.Close() })
	return NewSearchService(writer, slog.Default())
}

func searchDoc(id, title, description, industry, department string) domain.ProcessDocument {
	return domain.ProcessDocument{
		ID:         id,
		Title:      title,
		Industry:   industry,
		Department: department,
		Payload:    &domain.Payload{Description: description},
	}
}

func Test_Search_Finds_A_Document_By_Title(t *testing.T) {
	req := require.New(t)
	service := newSearchService(t)

	req.NoError(service.Index(searchDoc("p-1", "Customer onboarding", "Account opening for new customers", "finance", "sales")))
	req.NoError(service.Index(searchDoc("p-2", "Invoice dunning", "Chasing unpaid invoices", "finance", "accounting")))

	ids, err := service.Search(context.Background(), "onboarding", 10)
	req.NoError(err)
	req.Equal([]string{"p-1"}, ids)
}

func Test_Search_Matches_Description_And_Industry(t *testing.T) {
	req := require.New(t)
	service := newSearchService(t)

	req.NoError(service.Index(searchDoc("p-1", "Customer onboarding", "KYC checks for account opening", "finance", "sales")))
	req.NoError(service.Index(searchDoc("p-2", "Invoice dunning", "Chasing unpaid invoices", "finance", "accounting")))
	req.NoError(service.Index(searchDoc("p-3", "Patient intake", "Admission paperwork", "healthcare", "frontdesk")))

	ids, err := service.Search(context.Background(), "kyc", 10)
	req.NoError(err)
	req.Equal([]string{"p-1"}, ids)

	ids, err = service.Search(context.Background(), "finance", 10)
	req.NoError(err)
	req.ElementsMatch([]string{"p-1", "p-2"}, ids)
}

func Test_Search_Honors_The_Result_Limit(t *testing.T) {
	req := require.New(t)
	service := newSearchService(t)

	req.NoError(service.Index(searchDoc("p-1", "Expense approval", "", "finance", "accounting")))
	req.NoError(service.Index(searchDoc("p-2", "Budget approval", "", "finance", "controlling")))
	req.NoError(service.Index(searchDoc("p-3", "Leave approval", "", "finance", "hr")))

	ids, err := service.Search(context.Background(), "approval", 2)
	req.NoError(err)
	req.Len(ids, 2)
}

func Test_Removed_Documents_Stop_Matching(t *testing.T) {
	req := require.New(t)
	service := newSearchService(t)

	req.NoError(service.Index(searchDoc("p-1", "Customer onboarding", "", "finance", "sales")))
	req.NoError(service.Remove("p-1"))

	ids, err := service.Search(context.Background(), "onboarding", 10)
	req.NoError(err)
	req.Empty(ids)
}
