// Bot HTTP handlers.
//
// This file exposes REST endpoints for bot resources:
//   - GET    /bots        (list, newest first)
//   - GET    /bots/{id}   (fetch)
//   - POST   /bots        (create, optional Idempotency-Key)
//   - PUT    /bots/{id}   (wholesale replace)
//   - DELETE /bots/{id}   (remove)
//
// Handlers are transport-thin: they decode and normalize input, call the bot
// service, and translate results into HTTP responses.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-bots-backend/internal/domain"
	"github.com/tbourn/go-bots-backend/internal/http/middleware"
	"github.com/tbourn/go-bots-backend/internal/repo"
	"github.com/tbourn/go-bots-backend/internal/services"
	"github.com/tbourn/go-bots-backend/internal/utils"
)

// HeaderIdempotentReplay is set on a create response that was served from a
// previous request with the same Idempotency-Key.
const HeaderIdempotentReplay = "Idempotent-Replay"

//
// Service contracts (context-aware)
//

// BotService defines the bot operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type BotService interface {
	// List returns every bot, newest first.
	List(ctx context.Context) ([]domain.Bot, error)
	// Get returns one bot by id.
	Get(ctx context.Context, id int64) (*domain.Bot, error)
	// CreateOnce creates a bot; a non-empty key deduplicates retries.
	CreateOnce(ctx context.Context, key string, f domain.BotFields) (*domain.Bot, bool, error)
	// Update replaces every mutable field of a bot.
	Update(ctx context.Context, id int64, f domain.BotFields) (*domain.Bot, error)
	// Delete removes a bot.
	Delete(ctx context.Context, id int64) error
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for bots.
type Handlers struct {
	botSvc BotService
}

// New constructs and returns a Handlers instance bound to the given service.
func New(botSvc BotService) *Handlers {
	return &Handlers{botSvc: botSvc}
}

//
// DTOs
//

// BotRequest is the JSON payload for creating or replacing a bot.
// allowed_domains accepts either an array of strings or a comma-separated
// string; any other value is stored as an empty list. The optional text
// fields accept numbers and booleans and store their literal text.
type BotRequest struct {
	Nombre         string              `json:"nombre" example:"Asistente ventas"`
	Token          string              `json:"token" example:"gsk_123"`
	PromptBase     domain.TextInput    `json:"prompt_base" swaggertype:"string" example:"Eres un asistente amable."`
	Tipo           domain.TextInput    `json:"tipo" swaggertype:"string" example:"general"`
	Tema           domain.TextInput    `json:"tema" swaggertype:"string" example:"ventas"`
	Provider       domain.TextInput    `json:"provider" swaggertype:"string" example:"groq"`
	AllowedDomains domain.DomainsInput `json:"allowed_domains" swaggertype:"array,string" example:"example.com,shop.example.com"`
}

// Fields resolves the request into normalized bot fields.
func (r BotRequest) Fields() domain.BotFields {
	return domain.BotFields{
		Nombre:         r.Nombre,
		Token:          r.Token,
		PromptBase:     r.PromptBase.String(),
		Tipo:           r.Tipo.String(),
		Tema:           r.Tema.String(),
		Provider:       r.Provider.String(),
		AllowedDomains: r.AllowedDomains.Normalize(),
	}
}

//
// Helpers
//

// pathID parses the :id path parameter. Malformed ids answer 404 like
// unknown ones and the caller must return when ok is false.
func pathID(c *gin.Context) (int64, bool) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		fail(c, http.StatusNotFound, ErrCodeNotFound, services.ErrBotNotFound.Error(), "")
	}
	return id, ok
}

// bindBot decodes the request body. An empty body decodes to a zero request,
// which then fails required-field validation.
func bindBot(c *gin.Context) (BotRequest, bool) {
	var req BotRequest
	if c.Request.ContentLength == 0 {
		return req, true
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			fail(c, http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge, "request body too large", "")
			return req, false
		}
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body", "")
		return req, false
	}
	return req, true
}

// storeFailure writes a 5xx envelope carrying the store's message and detail.
func storeFailure(c *gin.Context, code string, err error) {
	fail(c, http.StatusInternalServerError, code, err.Error(), repo.ErrorDetail(err))
}

//
// Handlers
//

// ListBots godoc
// @ID          listBots
// @Summary     List bots
// @Description Returns every bot ordered by id, newest first. The array may be empty.
// @Tags        Bots
// @Produce     json
// @Success     200  {array}   domain.Bot
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /bots [get]
func (h *Handlers) ListBots(c *gin.Context) {
	bots, err := h.botSvc.List(c.Request.Context())
	if err != nil {
		storeFailure(c, ErrCodeListFailed, err)
		return
	}
	ok(c, http.StatusOK, bots)
}

// GetBot godoc
// @ID          getBot
// @Summary     Get a bot
// @Tags        Bots
// @Produce     json
// @Param       id   path      int  true  "Bot ID"  example(7)
// @Success     200  {object}  domain.Bot
// @Failure     404  {object}  handlers.ErrorResponse  "Bot not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /bots/{id} [get]
func (h *Handlers) GetBot(c *gin.Context) {
	id, found := pathID(c)
	if !found {
		return
	}
	b, err := h.botSvc.Get(c.Request.Context(), id)
	switch {
	case errors.Is(err, services.ErrBotNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error(), "")
	case err != nil:
		storeFailure(c, ErrCodeGetFailed, err)
	default:
		ok(c, http.StatusOK, b)
	}
}

// CreateBot godoc
// @ID          createBot
// @Summary     Create a bot
// @Description Creates a bot. tipo defaults to "general", provider to "groq" and allowed_domains to [].
// @Description Retrying with the same Idempotency-Key returns the bot created by the first request.
// @Tags        Bots
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key  header  string              false  "Deduplicates retries"  example(3f1c2a7e-create-bot)
// @Param       body             body    handlers.BotRequest true   "Bot payload"
// @Success     201  {object}  domain.Bot
// @Header      201  {string}  Idempotent-Replay  "true when served from a previous request"
// @Failure     400  {object}  handlers.ErrorResponse  "nombre or token missing"
// @Failure     413  {object}  handlers.ErrorResponse  "Body over 1 MiB"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /bots [post]
func (h *Handlers) CreateBot(c *gin.Context) {
	req, valid := bindBot(c)
	if !valid {
		return
	}
	key, _ := middleware.GetIdempotencyKey(c)

	b, replayed, err := h.botSvc.CreateOnce(c.Request.Context(), key, req.Fields())
	switch {
	case errors.Is(err, services.ErrMissingRequired):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), "")
	case errors.Is(err, services.ErrBotNotFound):
		// The bot recorded under this key has since been deleted.
		fail(c, http.StatusConflict, ErrCodeConflict, "idempotency key refers to a deleted bot", "")
	case err != nil:
		storeFailure(c, ErrCodeCreateFailed, err)
	default:
		if replayed {
			c.Header(HeaderIdempotentReplay, "true")
		}
		ok(c, http.StatusCreated, b)
	}
}

// UpdateBot godoc
// @ID          updateBot
// @Summary     Replace a bot
// @Description Overwrites every mutable field. Omitted optional fields are stored empty; no defaults are applied.
// @Tags        Bots
// @Accept      json
// @Produce     json
// @Param       id    path    int                  true  "Bot ID"  example(7)
// @Param       body  body    handlers.BotRequest  true  "Bot payload"
// @Success     200  {object}  domain.Bot
// @Failure     400  {object}  handlers.ErrorResponse  "nombre or token missing"
// @Failure     413  {object}  handlers.ErrorResponse  "Body over 1 MiB"
// @Failure     404  {object}  handlers.ErrorResponse  "Bot not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /bots/{id} [put]
func (h *Handlers) UpdateBot(c *gin.Context) {
	id, found := pathID(c)
	if !found {
		return
	}
	req, valid := bindBot(c)
	if !valid {
		return
	}

	b, err := h.botSvc.Update(c.Request.Context(), id, req.Fields())
	switch {
	case errors.Is(err, services.ErrMissingRequired):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), "")
	case errors.Is(err, services.ErrBotNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error(), "")
	case err != nil:
		storeFailure(c, ErrCodeUpdateFailed, err)
	default:
		ok(c, http.StatusOK, b)
	}
}

// DeleteBot godoc
// @ID          deleteBot
// @Summary     Delete a bot
// @Tags        Bots
// @Produce     json
// @Param       id   path      int  true  "Bot ID"  example(7)
// @Success     200  {object}  handlers.MessageResponse
// @Failure     404  {object}  handlers.ErrorResponse  "Bot not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /bots/{id} [delete]
func (h *Handlers) DeleteBot(c *gin.Context) {
	id, found := pathID(c)
	if !found {
		return
	}
	err := h.botSvc.Delete(c.Request.Context(), id)
	switch {
	case errors.Is(err, services.ErrBotNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error(), "")
	case err != nil:
		storeFailure(c, ErrCodeDeleteFailed, err)
	default:
		ok(c, http.StatusOK, MessageResponse{Message: "bot deleted"})
	}
}
