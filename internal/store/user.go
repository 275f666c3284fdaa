package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Balances are stored in the smallest currency unit.
const sqlSelectUserBalance = `
SELECT COALESCE(
    (SELECT balance FROM user_balances WHERE user_id = $1),
    0
)`

// GetUserBalance returns the user's prepaid balance, or zero when none is recorded
func (s *Store) GetUserBalance(ctx context.Context, userID uuid.UUID) (int64, error) {
	var balance int64
	err := s.db.GetContext(ctx, &balance, sqlSelectUserBalance, userID)
	if err != nil {
		s.logger.Error(ctx, "failed to get user balance", err)
		return 0, fmt.Errorf("failed to get user balance: %w", err)
	}
	return balance, nil
}
