package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-bots-backend/internal/domain"
	"github.com/tbourn/go-bots-backend/internal/repo"
)

// ----- Fake repo -----

type fakeBotRepo struct {
	listOut []domain.Bot
	listErr error

	getID  int64
	getBot *domain.Bot
	getErr error

	createFields domain.BotFields
	createCalls  int
	createErr    error

	updateID     int64
	updateFields domain.BotFields
	updateErr    error

	deleteID  int64
	deleteErr error
}

func (r *fakeBotRepo) ListBots(ctx context.Context, db *gorm.DB) ([]domain.Bot, error) {
	return r.listOut, r.listErr
}

func (r *fakeBotRepo) GetBot(ctx context.Context, db *gorm.DB, id int64) (*domain.Bot, error) {
	r.getID = id
	return r.getBot, r.getErr
}

func (r *fakeBotRepo) CreateBot(ctx context.Context, db *gorm.DB, f domain.BotFields) (*domain.Bot, error) {
	r.createCalls++
	r.createFields = f
	if r.createErr != nil {
		return nil, r.createErr
	}
	b := &domain.Bot{ID: int64(r.createCalls)}
	f.Apply(b)
	return b, nil
}

func (r *fakeBotRepo) UpdateBot(ctx context.Context, db *gorm.DB, id int64, f domain.BotFields) (*domain.Bot, error) {
	r.updateID, r.updateFields = id, f
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	b := &domain.Bot{ID: id}
	f.Apply(b)
	return b, nil
}

func (r *fakeBotRepo) DeleteBot(ctx context.Context, db *gorm.DB, id int64) error {
	r.deleteID = id
	return r.deleteErr
}

// gormBotRepo adapts the repo package functions to BotRepo.
type gormBotRepo struct{}

func (gormBotRepo) ListBots(ctx context.Context, db *gorm.DB) ([]domain.Bot, error) {
	return repo.ListBots(ctx, db)
}
func (gormBotRepo) GetBot(ctx context.Context, db *gorm.DB, id int64) (*domain.Bot, error) {
	return repo.GetBot(ctx, db, id)
}
func (gormBotRepo) CreateBot(ctx context.Context, db *gorm.DB, f domain.BotFields) (*domain.Bot, error) {
	return repo.CreateBot(ctx, db, f)
}
func (gormBotRepo) UpdateBot(ctx context.Context, db *gorm.DB, id int64, f domain.BotFields) (*domain.Bot, error) {
	return repo.UpdateBot(ctx, db, id, f)
}
func (gormBotRepo) DeleteBot(ctx context.Context, db *gorm.DB, id int64) error {
	return repo.DeleteBot(ctx, db, id)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:botsvc_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// ----- Tests -----

func TestNewBotService_Defaults(t *testing.T) {
	r := &fakeBotRepo{}
	s := NewBotService(nil, r)
	if s.DB != nil {
		t.Fatalf("expected nil DB, got %v", s.DB)
	}
	if s.Repo != r {
		t.Fatalf("repo not set")
	}
	if s.IdempotencyTTL != 24*time.Hour {
		t.Fatalf("IdempotencyTTL default = 24h, got %v", s.IdempotencyTTL)
	}
}

func TestList_NilBecomesEmpty(t *testing.T) {
	s := NewBotService(nil, &fakeBotRepo{})
	out, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", out)
	}
}

func TestList_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	s := NewBotService(nil, &fakeBotRepo{listErr: boom})
	if _, err := s.List(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestGet_MapsNotFound(t *testing.T) {
	r := &fakeBotRepo{getErr: repo.ErrNotFound}
	s := NewBotService(nil, r)
	_, err := s.Get(context.Background(), 7)
	if !errors.Is(err, ErrBotNotFound) {
		t.Fatalf("expected ErrBotNotFound, got %v", err)
	}
	if r.getID != 7 {
		t.Fatalf("repo got id %d; want 7", r.getID)
	}
}

func TestCreate_RequiresNombreAndToken(t *testing.T) {
	cases := []domain.BotFields{
		{Token: "t"},
		{Nombre: "n"},
		{Nombre: "   ", Token: "t"},
		{Nombre: "n", Token: "\t"},
	}
	for i, f := range cases {
		r := &fakeBotRepo{}
		s := NewBotService(nil, r)
		if _, err := s.Create(context.Background(), f); !errors.Is(err, ErrMissingRequired) {
			t.Fatalf("case %d: expected ErrMissingRequired, got %v", i, err)
		}
		if r.createCalls != 0 {
			t.Fatalf("case %d: repo must not be called", i)
		}
	}
}

func TestCreate_AppliesDefaults(t *testing.T) {
	r := &fakeBotRepo{}
	s := NewBotService(nil, r)

	b, err := s.Create(context.Background(), domain.BotFields{Nombre: "A", Token: "x"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if r.createFields.Tipo != domain.DefaultTipo || r.createFields.Provider != domain.DefaultProvider {
		t.Fatalf("defaults not applied: %+v", r.createFields)
	}
	if r.createFields.AllowedDomains == nil || len(r.createFields.AllowedDomains) != 0 {
		t.Fatalf("allowed domains should be empty non-nil, got %#v", r.createFields.AllowedDomains)
	}
	if b.Tipo != "general" || b.Provider != "groq" {
		t.Fatalf("returned bot unexpected: %+v", b)
	}
}

func TestCreate_KeepsExplicitOptionals(t *testing.T) {
	r := &fakeBotRepo{}
	s := NewBotService(nil, r)

	_, err := s.Create(context.Background(), domain.BotFields{Nombre: "A", Token: "x", Tipo: "ventas", Provider: "openai"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if r.createFields.Tipo != "ventas" || r.createFields.Provider != "openai" {
		t.Fatalf("explicit values overwritten: %+v", r.createFields)
	}
}

func TestUpdate_NoDefaultsAndWholesale(t *testing.T) {
	r := &fakeBotRepo{}
	s := NewBotService(nil, r)

	b, err := s.Update(context.Background(), 3, domain.BotFields{Nombre: "B", Token: "y"})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if r.updateID != 3 {
		t.Fatalf("repo got id %d; want 3", r.updateID)
	}
	if r.updateFields.Tipo != "" || r.updateFields.Provider != "" {
		t.Fatalf("update must not apply defaults: %+v", r.updateFields)
	}
	if r.updateFields.AllowedDomains == nil {
		t.Fatalf("allowed domains should be non-nil")
	}
	if b.ID != 3 || b.Nombre != "B" {
		t.Fatalf("returned bot unexpected: %+v", b)
	}
}

func TestUpdate_ValidationAndNotFound(t *testing.T) {
	r := &fakeBotRepo{updateErr: repo.ErrNotFound}
	s := NewBotService(nil, r)

	if _, err := s.Update(context.Background(), 1, domain.BotFields{Nombre: "B"}); !errors.Is(err, ErrMissingRequired) {
		t.Fatalf("expected ErrMissingRequired, got %v", err)
	}
	if _, err := s.Update(context.Background(), 1, domain.BotFields{Nombre: "B", Token: "y"}); !errors.Is(err, ErrBotNotFound) {
		t.Fatalf("expected ErrBotNotFound, got %v", err)
	}
}

func TestDelete_MapsNotFound(t *testing.T) {
	r := &fakeBotRepo{deleteErr: repo.ErrNotFound}
	s := NewBotService(nil, r)
	if err := s.Delete(context.Background(), 9); !errors.Is(err, ErrBotNotFound) {
		t.Fatalf("expected ErrBotNotFound, got %v", err)
	}
	if r.deleteID != 9 {
		t.Fatalf("repo got id %d; want 9", r.deleteID)
	}

	r.deleteErr = nil
	if err := s.Delete(context.Background(), 9); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestCreateOnce_BlankKeyIsPlainCreate(t *testing.T) {
	r := &fakeBotRepo{}
	s := NewBotService(nil, r)

	b, replayed, err := s.CreateOnce(context.Background(), "  ", domain.BotFields{Nombre: "A", Token: "x"})
	if err != nil || replayed || b == nil {
		t.Fatalf("unexpected result: b=%v replayed=%v err=%v", b, replayed, err)
	}
	if r.createCalls != 1 {
		t.Fatalf("expected one create, got %d", r.createCalls)
	}
}

func TestCreateOnce_ValidatesBeforeLookup(t *testing.T) {
	// DB is nil: any lookup would panic, so validation must come first.
	s := NewBotService(nil, &fakeBotRepo{})
	if _, _, err := s.CreateOnce(context.Background(), "k", domain.BotFields{Nombre: "A"}); !errors.Is(err, ErrMissingRequired) {
		t.Fatalf("expected ErrMissingRequired, got %v", err)
	}
}

func TestCreateOnce_ReplaysSameKey(t *testing.T) {
	db := newTestDB(t)
	s := NewBotService(db, gormBotRepo{})
	ctx := context.Background()

	first, replayed, err := s.CreateOnce(ctx, "key-1", domain.BotFields{Nombre: "A", Token: "x"})
	if err != nil || replayed {
		t.Fatalf("first CreateOnce: replayed=%v err=%v", replayed, err)
	}

	second, replayed, err := s.CreateOnce(ctx, "key-1", domain.BotFields{Nombre: "Other", Token: "y"})
	if err != nil {
		t.Fatalf("second CreateOnce: %v", err)
	}
	if !replayed || second.ID != first.ID || second.Nombre != "A" {
		t.Fatalf("expected replay of %d, got replayed=%v bot=%+v", first.ID, replayed, second)
	}

	bots, err := repo.ListBots(ctx, db)
	if err != nil {
		t.Fatalf("ListBots: %v", err)
	}
	if len(bots) != 1 {
		t.Fatalf("expected exactly one stored bot, got %d", len(bots))
	}

	third, replayed, err := s.CreateOnce(ctx, "key-2", domain.BotFields{Nombre: "C", Token: "z"})
	if err != nil || replayed || third.ID == first.ID {
		t.Fatalf("new key should create: replayed=%v err=%v bot=%+v", replayed, err, third)
	}
}

func TestCreateOnce_ExpiredKeyCreatesAgain(t *testing.T) {
	db := newTestDB(t)
	s := NewBotService(db, gormBotRepo{})
	s.IdempotencyTTL = time.Millisecond
	ctx := context.Background()

	first, _, err := s.CreateOnce(ctx, "k", domain.BotFields{Nombre: "A", Token: "x"})
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	second, replayed, err := s.CreateOnce(ctx, "k", domain.BotFields{Nombre: "A", Token: "x"})
	if err != nil || replayed || second.ID == first.ID {
		t.Fatalf("expected fresh create after expiry: replayed=%v err=%v", replayed, err)
	}
}

func TestCreateOnce_ReplayOfDeletedBot(t *testing.T) {
	db := newTestDB(t)
	s := NewBotService(db, gormBotRepo{})
	ctx := context.Background()

	b, _, err := s.CreateOnce(ctx, "gone", domain.BotFields{Nombre: "A", Token: "x"})
	if err != nil {
		t.Fatalf("CreateOnce: %v", err)
	}
	if err := s.Delete(ctx, b.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, _, err := s.CreateOnce(ctx, "gone", domain.BotFields{Nombre: "A", Token: "x"}); !errors.Is(err, ErrBotNotFound) {
		t.Fatalf("expected ErrBotNotFound, got %v", err)
	}
}
