package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"procdesk/domain"
	"procdesk/errors"
)

func Test_Create_Starts_As_Draft_With_An_Audit_Entry(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	doc, err := f.process.Create("Client Onboarding", "finance", "operations", &domain.Payload{
		Description: "as-is onboarding flow",
	})
	req.NoError(err)
	req.NotEmpty(doc.ID)
	req.Equal(domain.StatusDraft, doc.Status)
	req.Equal(doc.CreatedAt, doc.UpdatedAt)

	entries, err := f.audit.Query(doc.ID)
	req.NoError(err)
	req.Len(entries, 1)
	req.Equal(domain.AuditCreated, entries[0].Action)
	req.Equal(domain.SystemUser, entries[0].User)
}

func Test_Save_Cannot_Move_A_Document_Through_The_Workflow(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	doc := f.seedProcess(t, "Client Onboarding", domain.StatusInReview)

	edited := doc
	edited.Title = "Client Onboarding v2"
	edited.Status = domain.StatusApproved

	saved, err := f.process.Save(edited)
	req.NoError(err)
	req.Equal("Client Onboarding v2", saved.Title)
	req.Equal(domain.StatusInReview, saved.Status)

	entries, err := f.audit.Query(doc.ID)
	req.NoError(err)
	req.Len(entries, 1)
	req.Equal(domain.AuditEdited, entries[0].Action)
}

func Test_Save_Of_An_Unknown_Document_Fails(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	_, err := f.process.Save(domain.ProcessDocument{ID: "ghost", Title: "Ghost"})
	req.ErrorIs(err, errors.ErrNotFound)
}

func Test_Touch_Stamps_Last_Viewed_Without_Editing(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	doc := f.seedProcess(t, "Client Onboarding", domain.StatusDraft)
	before := time.Now().UTC()

	req.NoError(f.process.Touch(doc.ID))

	fetched, err := f.process.Get(doc.ID)
	req.NoError(err)
	req.NotNil(fetched.LastViewedAt)
	req.False(fetched.LastViewedAt.Before(before))
	req.Equal(doc.Title, fetched.Title)

	entries, err := f.audit.Query(doc.ID)
	req.NoError(err)
	req.Empty(entries)
}

func Test_Save_From_A_Stale_Copy_Keeps_The_Last_Viewed_Timestamp(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	doc := f.seedProcess(t, "Client Onboarding", domain.StatusDraft)
	req.NoError(f.process.Touch(doc.ID))

	// The edit was drafted from a copy fetched before the view was
	// recorded; saving it must not clear the timestamp.
	stale := doc
	stale.Title = "Client Onboarding v2"
	saved, err := f.process.Save(stale)
	req.NoError(err)
	req.Equal("Client Onboarding v2", saved.Title)
	req.NotNil(saved.LastViewedAt)

	fetched, err := f.process.Get(doc.ID)
	req.NoError(err)
	req.NotNil(fetched.LastViewedAt)
}

func Test_Delete_Removes_The_Document(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	doc := f.seedProcess(t, "Client Onboarding", domain.StatusDraft)
	req.NoError(f.process.Delete(doc.ID))

	_, err := f.process.Get(doc.ID)
	req.ErrorIs(err, errors.ErrNotFound)
}
