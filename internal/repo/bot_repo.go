// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Bot model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. Each one
// issues a single statement except UpdateBot, which reads the row back after
// writing it.
//
// Error semantics:
//   - When a bot is not found, functions return ErrNotFound
//     (an alias of gorm.ErrRecordNotFound).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
//
// Usage:
//
//	bot, err := repo.GetBot(ctx, db, 42)
//	if errors.Is(err, repo.ErrNotFound) {
//	    // handle missing
//	} else if err != nil {
//	    // handle DB failure
//	}
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-bots-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// ListBots returns every bot ordered by id descending (newest first). It
// returns an empty, non-nil slice when the table is empty.
func ListBots(ctx context.Context, db *gorm.DB) ([]domain.Bot, error) {
	out := []domain.Bot{}
	err := db.WithContext(ctx).
		Order("id desc").
		Find(&out).Error
	if out == nil {
		out = []domain.Bot{}
	}
	return out, err
}

// GetBot fetches a single bot by id. If the record does not exist, it returns
// ErrNotFound.
func GetBot(ctx context.Context, db *gorm.DB, id int64) (*domain.Bot, error) {
	var b domain.Bot
	if err := db.WithContext(ctx).Where("id = ?", id).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// CreateBot inserts a bot built from f. The generated id is populated on the
// returned value.
func CreateBot(ctx context.Context, db *gorm.DB, f domain.BotFields) (*domain.Bot, error) {
	b := &domain.Bot{}
	f.Apply(b)
	if err := db.WithContext(ctx).Create(b).Error; err != nil {
		return nil, err
	}
	return b, nil
}

// UpdateBot overwrites every mutable column of the bot identified by id with f
// and returns the stored row. If no row matches, it returns ErrNotFound.
func UpdateBot(ctx context.Context, db *gorm.DB, id int64, f domain.BotFields) (*domain.Bot, error) {
	res := db.WithContext(ctx).
		Model(&domain.Bot{}).
		Where("id = ?", id).
		Updates(f.Columns())
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return GetBot(ctx, db, id)
}

// DeleteBot permanently removes the bot identified by id. If no row matches,
// it returns ErrNotFound.
func DeleteBot(ctx context.Context, db *gorm.DB, id int64) error {
	res := db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.Bot{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
