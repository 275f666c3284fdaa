package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const sqlGetTemplate = `
SELECT id, user_id, name, message_type, rcs_sub_type, status, title, body, image_ref, urls,
       buttons, slides, created_at, updated_at
FROM message_templates
WHERE id = $1
`

// GetTemplate retrieves a message template by ID
func (s *Store) GetTemplate(ctx context.Context, templateID uuid.UUID) (Template, error) {
	var template Template
	err := s.db.GetContext(ctx, &template, sqlGetTemplate, templateID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Template{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get template", err)
		return Template{}, fmt.Errorf("failed to get template: %w", err)
	}
	return template, nil
}
