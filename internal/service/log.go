package service

import (
	"context"

	"github.com/telvia/assistant/internal/domain"
)

const defaultLogLimit = 50

// RecentQueryLogs returns the newest query log entries, most recent first.
func (s *Service) RecentQueryLogs(ctx context.Context, limit int) ([]domain.QueryLogEntry, error) {
	if limit <= 0 {
		limit = defaultLogLimit
	}
	entries, err := s.store.ListRecentQueryLogs(ctx, limit)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "list query logs", Err: err}
	}
	return entries, nil
}

// SessionTurns returns a session transcript in chronological order. A
// positive limit keeps only the most recent turns.
func (s *Service) SessionTurns(ctx context.Context, token string, limit int) ([]domain.Turn, error) {
	turns, err := s.store.GetTurns(ctx, token, limit)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "get turns", Err: err}
	}
	return turns, nil
}
