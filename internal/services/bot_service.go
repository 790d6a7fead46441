// Package services – BotService
//
// This file implements the BotService, which manages the lifecycle of bot
// configurations. It validates required fields, applies creation defaults and
// coordinates repository operations for listing, fetching, creating, updating
// and deleting bots. Creates carrying an idempotency key are recorded so that
// a retried request returns the bot produced by the first attempt.
//
// Service-level errors (ErrBotNotFound, ErrMissingRequired) are returned for
// predictable cases so handlers can map them to HTTP results consistently.
package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-bots-backend/internal/domain"
	"github.com/tbourn/go-bots-backend/internal/repo"
)

// CreateScope namespaces idempotency keys used for bot creation.
const CreateScope = "POST /bots"

// BotRepo defines the repository contract required by BotService.
type BotRepo interface {
	// ListBots returns all bots, newest first.
	ListBots(ctx context.Context, db *gorm.DB) ([]domain.Bot, error)

	// GetBot fetches a bot by id.
	GetBot(ctx context.Context, db *gorm.DB, id int64) (*domain.Bot, error)

	// CreateBot inserts a bot and returns it with its assigned id.
	CreateBot(ctx context.Context, db *gorm.DB, f domain.BotFields) (*domain.Bot, error)

	// UpdateBot overwrites every mutable field of an existing bot.
	UpdateBot(ctx context.Context, db *gorm.DB, id int64, f domain.BotFields) (*domain.Bot, error)

	// DeleteBot removes a bot permanently.
	DeleteBot(ctx context.Context, db *gorm.DB, id int64) error
}

// BotService provides the bot CRUD use-cases on top of a BotRepo.
type BotService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the bot repository used by this service.
	Repo BotRepo

	// IdempotencyTTL bounds how long a create idempotency key is honored.
	IdempotencyTTL time.Duration
}

// NewBotService constructs a BotService with a 24h idempotency window.
func NewBotService(db *gorm.DB, r BotRepo) *BotService {
	return &BotService{
		DB:             db,
		Repo:           r,
		IdempotencyTTL: 24 * time.Hour,
	}
}

// List returns every bot ordered newest first. The result is never nil.
func (s *BotService) List(ctx context.Context) ([]domain.Bot, error) {
	bots, err := s.Repo.ListBots(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	if bots == nil {
		bots = []domain.Bot{}
	}
	return bots, nil
}

// Get returns the bot with the given id or ErrBotNotFound.
func (s *BotService) Get(ctx context.Context, id int64) (*domain.Bot, error) {
	b, err := s.Repo.GetBot(ctx, s.DB, id)
	return b, notFound(err)
}

// Create validates f, fills in the default tipo and provider, and inserts a
// new bot.
func (s *BotService) Create(ctx context.Context, f domain.BotFields) (*domain.Bot, error) {
	if err := validate(f); err != nil {
		return nil, err
	}
	return s.Repo.CreateBot(ctx, s.DB, f.WithDefaults())
}

// CreateOnce behaves like Create, but when key is non-blank the outcome is
// remembered under (CreateScope, key). A repeated call with the same key
// returns the originally created bot and replayed=true instead of inserting
// again. Concurrent first attempts race on the unique (scope, key) index; the
// loser rolls back its insert and returns the winner's bot.
func (s *BotService) CreateOnce(ctx context.Context, key string, f domain.BotFields) (*domain.Bot, bool, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		b, err := s.Create(ctx, f)
		return b, false, err
	}
	if err := validate(f); err != nil {
		return nil, false, err
	}

	if b, ok, err := s.replay(ctx, key); ok || err != nil {
		return b, ok, err
	}

	var created *domain.Bot
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.ReleaseIdempotency(ctx, tx, CreateScope, key, time.Now().UTC()); err != nil {
			return err
		}
		b, err := s.Repo.CreateBot(ctx, tx, f.WithDefaults())
		if err != nil {
			return err
		}
		if _, err := repo.CreateIdempotency(ctx, tx, CreateScope, key, b.ID, http.StatusCreated, s.IdempotencyTTL); err != nil {
			return err
		}
		created = b
		return nil
	})
	if errors.Is(err, repo.ErrDuplicate) {
		b, ok, rerr := s.replay(ctx, key)
		if rerr != nil {
			return nil, false, rerr
		}
		if ok {
			return b, true, nil
		}
	}
	if err != nil {
		return nil, false, err
	}
	return created, false, nil
}

// replay looks up a live idempotency record for key and loads its bot.
func (s *BotService) replay(ctx context.Context, key string) (*domain.Bot, bool, error) {
	rec, err := repo.GetIdempotency(ctx, s.DB, CreateScope, key, time.Now().UTC())
	if errors.Is(err, repo.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	b, err := s.Repo.GetBot(ctx, s.DB, rec.BotID)
	if err != nil {
		return nil, false, notFound(err)
	}
	return b, true, nil
}

// Update validates f and overwrites every mutable field of bot id. Omitted
// optional fields are stored empty; no defaults are applied.
func (s *BotService) Update(ctx context.Context, id int64, f domain.BotFields) (*domain.Bot, error) {
	if err := validate(f); err != nil {
		return nil, err
	}
	if f.AllowedDomains == nil {
		f.AllowedDomains = []string{}
	}
	b, err := s.Repo.UpdateBot(ctx, s.DB, id, f)
	return b, notFound(err)
}

// Delete removes bot id or returns ErrBotNotFound.
func (s *BotService) Delete(ctx context.Context, id int64) error {
	return notFound(s.Repo.DeleteBot(ctx, s.DB, id))
}

// validate enforces the presence of nombre and token. Whitespace-only values
// count as missing.
func validate(f domain.BotFields) error {
	if strings.TrimSpace(f.Nombre) == "" || strings.TrimSpace(f.Token) == "" {
		return ErrMissingRequired
	}
	return nil
}

// notFound maps the repository's not-found sentinel to ErrBotNotFound.
func notFound(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return ErrBotNotFound
	}
	return err
}
