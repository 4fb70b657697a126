package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"procdesk/domain"
	"procdesk/errors"
)

func Test_Append_Defaults_To_System_User(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	entry, err := f.audit.Append("entity-1", domain.AuditCreated, "Process created", "")
	req.NoError(err)
	req.Equal(domain.SystemUser, entry.User)
	req.NotEmpty(entry.ID)
	req.False(entry.Timestamp.IsZero())
}

func Test_Append_Rejects_Action_Outside_The_Enum(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	_, err := f.audit.Append("entity-1", "archived", "not a real action", "")
	req.ErrorIs(err, errors.ErrInvalidAction)

	entries, err := f.audit.Query("entity-1")
	req.NoError(err)
	req.Empty(entries)
}

func Test_Export_Renders_One_Line_Per_Entry(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	_, err := f.audit.Append("entity-1", domain.AuditCreated, "Process created", "alice")
	req.NoError(err)
	_, err = f.audit.Append("entity-1", domain.AuditSubmittedForReview, "Submitted for review", "alice")
	req.NoError(err)
	_, err = f.audit.Append("entity-1", domain.AuditApproved, "Approved", "bob")
	req.NoError(err)

	report, err := f.audit.Export("entity-1")
	req.NoError(err)
	req.Contains(report, "created")
	req.Contains(report, "submitted_for_review")
	req.Contains(report, "approved")
	req.Contains(report, "alice")
	req.Contains(report, "bob")
}
