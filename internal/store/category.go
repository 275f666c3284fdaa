package store

import (
	"campaign-gateway/internal/campaign/targeting"
	"context"
	"fmt"
)

const sqlListCategories = `
SELECT domain, code, name
FROM categories
ORDER BY domain, code
`

// ListCategories returns the whole targeting category catalog
func (s *Store) ListCategories(ctx context.Context) ([]targeting.Category, error) {
	categories := []targeting.Category{}
	if err := s.db.SelectContext(ctx, &categories, sqlListCategories); err != nil {
		s.logger.Error(ctx, "failed to list categories", err)
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
