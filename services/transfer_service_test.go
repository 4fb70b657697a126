package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"procdesk/domain"
	"procdesk/errors"
)

func Test_Export_Then_Import_Round_Trips_Every_Process(t *testing.T) {
	req := require.New(t)
	source := newFixture(t)

	source.seedProcess(t, "Client Onboarding", domain.StatusApproved)
	source.seedProcess(t, "Invoice Approval", domain.StatusDraft)
	source.seedProcess(t, "Supplier Vetting", domain.StatusInReview)

	data, err := source.transfer.ExportJSON()
	req.NoError(err)

	target := newFixture(t)
	imported, err := target.transfer.Import(data)
	req.NoError(err)
	req.Equal(3, imported)

	docs, err := target.processes.GetAll()
	req.NoError(err)
	req.Len(docs, 3)

	titles := make(map[string]domain.Status, len(docs))
	for _, doc := range docs {
		titles[doc.Title] = doc.Status
	}
	req.Equal(domain.StatusApproved, titles["Client Onboarding"])
	req.Equal(domain.StatusDraft, titles["Invoice Approval"])
	req.Equal(domain.StatusInReview, titles["Supplier Vetting"])
}

func Test_Reimporting_The_Same_File_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	f.seedProcess(t, "Client Onboarding", domain.StatusDraft)
	data, err := f.transfer.ExportJSON()
	req.NoError(err)

	for i := 0; i < 3; i++ {
		imported, err := f.transfer.Import(data)
		req.NoError(err)
		req.Equal(1, imported)
	}

	docs, err := f.processes.GetAll()
	req.NoError(err)
	req.Len(docs, 1)
}

func Test_Import_Skips_Invalid_Records_And_Keeps_The_Rest(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	valid := f.seedProcess(t, "Client Onboarding", domain.StatusDraft)
	envelope := domain.ExportEnvelope{
		Version: domain.ExportFormatVersion,
		Processes: []domain.ProcessDocument{
			{ID: "", Title: "Missing id", Payload: valid.Payload},
			{ID: "no-payload", Title: "Missing payload"},
			valid,
		},
	}
	data, err := json.Marshal(envelope)
	req.NoError(err)

	imported, err := f.transfer.Import(data)
	req.NoError(err)
	req.Equal(1, imported)

	docs, err := f.processes.GetAll()
	req.NoError(err)
	req.Len(docs, 1)
	req.Equal(valid.ID, docs[0].ID)
}

func Test_Import_Aborts_On_Malformed_Envelope(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	cases := map[string][]byte{
		"not json at all":          []byte("{title: Client Onboarding"),
		"json but not an envelope": []byte(`{"documents": []}`),
		"missing processes":        []byte(`{"version": 1}`),
		"missing version":          []byte(`{"processes": []}`),
		"binary payload":           {0x1f, 0x8b, 0x08, 0x00, 0x00, 0x00},
	}
	for name, data := range cases {
		imported, err := f.transfer.Import(data)
		req.ErrorIs(err, errors.ErrImportFormat, name)
		req.Zero(imported, name)
	}

	docs, err := f.processes.GetAll()
	req.NoError(err)
	req.Empty(docs)
}

func Test_Import_Fills_Missing_Timestamps(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	envelope := domain.ExportEnvelope{
		Version: domain.ExportFormatVersion,
		Processes: []domain.ProcessDocument{
			{ID: "p-1", Title: "Client Onboarding", Payload: &domain.Payload{Description: "as-is"}},
		},
	}
	data, err := json.Marshal(envelope)
	req.NoError(err)

	imported, err := f.transfer.Import(data)
	req.NoError(err)
	req.Equal(1, imported)

	doc, ok, err := f.processes.Get("p-1")
	req.NoError(err)
	req.True(ok)
	req.False(doc.CreatedAt.IsZero())
	req.Equal(doc.CreatedAt, doc.UpdatedAt)
}
