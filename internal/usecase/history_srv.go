package usecase

import (
	"context"

	"moodflix/internal/data/entity"
	"moodflix/internal/data/repository"
	"moodflix/pkg/utils"

	"go.uber.org/zap"
)

type HistoryService interface {
	List(ctx context.Context, owner string) ([]entity.HistoryEntry, error)
	// Add stamps entry with a fresh id and timestamp and stores it.
	Add(ctx context.Context, owner string, entry entity.HistoryEntry) (*entity.HistoryEntry, error)
	Remove(ctx context.Context, owner, id string) error
	Clear(ctx context.Context, owner string) error
}

type historyService struct {
	repo  repository.HistoryRepository
	limit int
	log   *zap.Logger
}

func NewHistoryService(repo repository.HistoryRepository, log *zap.Logger) HistoryService {
	return &historyService{
		repo:  repo,
		limit: entity.HistoryLimit,
		log:   log.With(zap.String("service", "history")),
	}
}

func (s *historyService) List(ctx context.Context, owner string) ([]entity.HistoryEntry, error) {
	if owner == "" {
		return nil, ErrUnauthenticated
	}
	return s.repo.List(ctx, owner)
}

func (s *historyService) Add(ctx context.Context, owner string, entry entity.HistoryEntry) (*entity.HistoryEntry, error) {
	if owner == "" {
		return nil, ErrUnauthenticated
	}

	entry.ID = utils.NewHistoryID()
	entry.Timestamp = utils.Now()
	if entry.Genres == nil {
		entry.Genres = []string{}
	}

	if err := s.repo.Add(ctx, owner, entry, s.limit); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *historyService) Remove(ctx context.Context, owner, id string) error {
	if owner == "" {
		return ErrUnauthenticated
	}
	if id == "" {
		return newValidationError("History ID is required.", nil)
	}
	return s.repo.Remove(ctx, owner, id)
}

func (s *historyService) Clear(ctx context.Context, owner string) error {
	if owner == "" {
		return ErrUnauthenticated
	}
	return s.repo.Clear(ctx, owner)
}
