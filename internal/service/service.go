// Package service orchestrates a query run from classification through
// dispatch to persistence.
package service

import (
	"sync"

	"github.com/telvia/assistant/internal/agents"
	"github.com/telvia/assistant/internal/adapter/webhook"
	"github.com/telvia/assistant/internal/classifier"
	"github.com/telvia/assistant/internal/config"
	store "github.com/telvia/assistant/internal/repository"
)

type Service struct {
	store      store.Store
	classifier *classifier.Classifier
	registry   *agents.Registry
	webhook    *webhook.Client
	config     *config.Config

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(st store.Store, cls *classifier.Classifier, reg *agents.Registry, wh *webhook.Client, cfg *config.Config) *Service {
	return &Service{
		store:      st,
		classifier: cls,
		registry:   reg,
		webhook:    wh,
		config:     cfg,
		locks:      make(map[string]*sync.Mutex),
	}
}

// sessionLock returns the mutex serializing runs for one session token.
// Concurrent runs on different tokens proceed independently.
func (s *Service) sessionLock(token string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[token]
	if !ok {
		l = &sync.Mutex{}
		s.locks[token] = l
	}
	return l
}
