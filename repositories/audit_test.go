package repositories

import (
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"procdesk/domain"
)

func Test_Append_Then_Query_Returns_Every_Entry(t *testing.T) {
	req := require.New(t)
	repo := NewAuditRepository(openTestStore(t), slog.Default())

	entityID := uuid.NewString()
	at := time.Now().UTC()
	for i := 0; i < 5; i++ {
		req.NoError(repo.Append(domain.AuditEntry{
			ID:          uuid.NewString(),
			EntityID:    entityID,
			Action:      domain.AuditEdited,
			Description: fmt.Sprintf("edit %d", i),
			User:        domain.SystemUser,
			Timestamp:   at.Add(time.Duration(i) * time.Second),
		}))
	}

	entries, err := repo.GetByEntity(entityID)
	req.NoError(err)
	req.Len(entries, 5)
	for i, entry := range entries {
		req.Equal(fmt.Sprintf("edit %d", i), entry.Description)
		req.Equal(domain.SystemUser, entry.User)
	}
}

func Test_Query_Is_Scoped_To_Entity(t *testing.T) {
	req := require.New(t)
	repo := NewAuditRepository(openTestStore(t), slog.Default())

	mine := uuid.NewString()
	other := uuid.NewString()
	at := time.Now().UTC()
	req.NoError(repo.Append(domain.AuditEntry{
		ID: uuid.NewString(), EntityID: mine, Action: domain.AuditCreated,
		User: domain.SystemUser, Timestamp: at,
	}))
	req.NoError(repo.Append(domain.AuditEntry{
		ID: uuid.NewString(), EntityID: other, Action: domain.AuditCreated,
		User: domain.SystemUser, Timestamp: at,
	}))

	entries, err := repo.GetByEntity(mine)
	req.NoError(err)
	req.Len(entries, 1)
	req.Equal(mine, entries[0].EntityID)
}
