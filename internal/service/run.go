package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/telvia/assistant/internal/adapter/webhook"
	"github.com/telvia/assistant/internal/domain"
)

// Run drives one query through the routing state machine and persists the
// completed exchange. Runs on the same session token are serialized; runs on
// distinct tokens proceed concurrently.
func (s *Service) Run(ctx context.Context, req *domain.QueryRequest) (*domain.QueryResponse, error) {
	st := &domain.RoutingState{
		State:        domain.RunStateStart,
		Query:        req.Query,
		CustomerID:   req.CustomerID,
		SessionToken: req.SessionToken,
	}
	if st.CustomerID == "" {
		st.CustomerID = s.config.DefaultCustomerID
	}
	if st.SessionToken == "" {
		st.SessionToken = uuid.New().String()
	}

	lock := s.sessionLock(st.SessionToken)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.store.GetOrCreateSession(ctx, st.SessionToken, st.CustomerID)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "get or create session", Err: err}
	}
	st.History = session.RecentTurns(historyLimit)

	st.Category = s.classify(ctx, st)
	st.State = domain.RunStateClassified

	st.Response = s.dispatch(ctx, st)
	st.State = domain.RunStateDispatched

	if err := s.persistExchange(ctx, st); err != nil {
		return nil, err
	}
	st.State = domain.RunStateResponded

	s.notify(st)

	return &domain.QueryResponse{
		Response:     st.Response,
		SessionToken: st.SessionToken,
		Category:     st.Category,
	}, nil
}

// classify resolves the category for the current query. A classifier failure
// degrades the run to OTHER rather than aborting it.
func (s *Service) classify(ctx context.Context, st *domain.RoutingState) domain.Category {
	cat, err := s.classifier.Classify(ctx, st.Query, st.CustomerID, st.History)
	if err != nil {
		var cerr *domain.ClassificationError
		if errors.As(err, &cerr) {
			slog.Warn("classification degraded to OTHER", "session", st.SessionToken, "error", err)
		} else {
			slog.Warn("classifier returned unexpected error", "session", st.SessionToken, "error", err)
		}
		return domain.CategoryOther
	}
	return cat
}

// dispatch hands the query to the category's handler. OTHER has no handler
// and resolves to the fallback response.
func (s *Service) dispatch(ctx context.Context, st *domain.RoutingState) string {
	effective := FormatEffectiveQuery(st.Query, st.History)

	ctx, cancel := context.WithTimeout(ctx, s.config.HandlerTimeout)
	defer cancel()

	response, ok := s.registry.Dispatch(ctx, st.Category, effective, st.CustomerID)
	if !ok {
		return FallbackResponse
	}
	return response
}

func (s *Service) persistExchange(ctx context.Context, st *domain.RoutingState) error {
	now := time.Now().UTC()
	userTurn := domain.Turn{
		TurnID:    uuid.New().String(),
		SessionID: st.SessionToken,
		Role:      domain.RoleUser,
		Content:   st.Query,
		CreatedAt: now,
	}
	assistantTurn := domain.Turn{
		TurnID:    uuid.New().String(),
		SessionID: st.SessionToken,
		Role:      domain.RoleAssistant,
		Content:   st.Response,
		CreatedAt: now.Add(time.Microsecond),
	}
	if err := s.store.AppendExchange(ctx, st.SessionToken, userTurn, assistantTurn, st.Category); err != nil {
		return &domain.PersistenceError{Op: "append exchange", Err: err}
	}
	return nil
}

func (s *Service) notify(st *domain.RoutingState) {
	if s.webhook == nil || !s.webhook.Enabled() {
		return
	}
	ev := &webhook.Event{
		SessionToken: st.SessionToken,
		CustomerID:   st.CustomerID,
		Category:     string(st.Category),
		Query:        st.Query,
		Response:     st.Response,
		OccurredAt:   time.Now().Unix(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		s.webhook.Notify(ctx, ev)
	}()
}
