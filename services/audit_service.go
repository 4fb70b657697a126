package services

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"procdesk/domain"
	"procdesk/errors"
	"procdesk/repositories"
)

type IAuditService interface {
	Append(entityID string, action domain.AuditAction, description, user string) (domain.AuditEntry, error)
	Query(entityID string) ([]domain.AuditEntry, error)
	Export(entityID string) (string, error)
}

// AuditService is the append-only ledger of actions taken against an
// entity. Entries are timestamped here; callers supply only the what and
// the who.
type AuditService struct {
	audit repositories.IAuditRepository
	log   *slog.Logger
}

func NewAuditService(audit repositories.IAuditRepository, log *slog.Logger) *AuditService {
	return &AuditService{audit: audit, log: log}
}

func (s *AuditService) Append(entityID string, action domain.AuditAction, description, user string) (domain.AuditEntry, error) {
	if !action.Valid() {
		return domain.AuditEntry{}, fmt.Errorf("%w: %q", errors.ErrInvalidAction, action)
	}
	if user == "" {
		user = domain.SystemUser
	}
	entry := domain.AuditEntry{
		ID:          uuid.NewString(),
		EntityID:    entityID,
		Action:      action,
		Description: description,
		User:        user,
		Timestamp:   time.Now().UTC(),
	}
	if err := s.audit.Append(entry); err != nil {
		return domain.AuditEntry{}, err
	}
	return entry, nil
}

// Query returns every entry for the entity, oldest first. Consumers filter
// or re-sort on their side when they need a different view.
func (s *AuditService) Query(entityID string) ([]domain.AuditEntry, error) {
	return s.audit.GetByEntity(entityID)
}

// Export renders the entity's full trail as a plain-text report, one line
// per entry, suitable for clipboard copy or download.
func (s *AuditService) Export(entityID string) (string, error) {
	entries, err := s.Query(entityID)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	table := tablewriter.NewWriter(&sb)
	table.SetHeader([]string{"Timestamp", "Action", "Description", "User"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	table.AppendBulk(lo.Map(entries, func(entry domain.AuditEntry, _ int) []string {
		return []string{
			entry.Timestamp.Format(time.RFC3339),
			string(entry.Action),
			entry.Description,
			entry.User,
		}
	}))
	table.Render()
	return sb.String(), nil
}
