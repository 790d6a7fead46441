// Package domain defines the persistence model for bot configuration records.
// These types are mapped with GORM and form the core data layer of the bots
// management API.
package domain

import "gorm.io/datatypes"

// Default values applied to optional fields when a bot is created.
const (
	DefaultTipo     = "general"
	DefaultProvider = "groq"
)

// Bot is the configuration record of a single chat/automation agent.
//
// Fields:
//   - ID: generated integer primary key, immutable once assigned.
//   - Nombre: display name (required).
//   - Token: provider access token (required).
//   - PromptBase: base/system prompt.
//   - Tipo: bot type, "general" unless set.
//   - Tema: topic the bot talks about.
//   - Provider: LLM provider, "groq" unless set.
//   - AllowedDomains: origins allowed to embed the bot widget, persisted as a
//     JSON array of trimmed, non-empty strings.
//
// There are no timestamps and no soft-delete column: a delete removes the row.
type Bot struct {
	ID             int64                       `json:"id"              gorm:"primaryKey;autoIncrement"`
	Nombre         string                      `json:"nombre"          gorm:"type:text;not null"`
	Token          string                      `json:"token"           gorm:"type:text;not null"`
	PromptBase     string                      `json:"prompt_base"     gorm:"type:text"`
	Tipo           string                      `json:"tipo"            gorm:"type:text"`
	Tema           string                      `json:"tema"            gorm:"type:text"`
	Provider       string                      `json:"provider"        gorm:"type:text"`
	AllowedDomains datatypes.JSONSlice[string] `json:"allowed_domains" gorm:"not null" swaggertype:"array,string"`
}

// TableName returns the database table name for Bot.
func (Bot) TableName() string { return "bots" }

// BotFields carries the mutable fields of a bot after the transport layer has
// resolved the request body. AllowedDomains is already normalized.
type BotFields struct {
	Nombre         string
	Token          string
	PromptBase     string
	Tipo           string
	Tema           string
	Provider       string
	AllowedDomains []string
}

// WithDefaults returns a copy of f where empty optional fields are replaced by
// their creation defaults. Required fields are never touched.
func (f BotFields) WithDefaults() BotFields {
	if f.Tipo == "" {
		f.Tipo = DefaultTipo
	}
	if f.Provider == "" {
		f.Provider = DefaultProvider
	}
	if f.AllowedDomains == nil {
		f.AllowedDomains = []string{}
	}
	return f
}

// Apply overwrites every mutable field of b with f. Nothing is merged.
func (f BotFields) Apply(b *Bot) {
	domains := f.AllowedDomains
	if domains == nil {
		domains = []string{}
	}
	b.Nombre = f.Nombre
	b.Token = f.Token
	b.PromptBase = f.PromptBase
	b.Tipo = f.Tipo
	b.Tema = f.Tema
	b.Provider = f.Provider
	b.AllowedDomains = datatypes.JSONSlice[string](domains)
}

// Columns returns the column/value map used for a wholesale UPDATE. Using a
// map makes GORM write zero values (empty strings) instead of skipping them.
func (f BotFields) Columns() map[string]any {
	var b Bot
	f.Apply(&b)
	return map[string]any{
		"nombre":          b.Nombre,
		"token":           b.Token,
		"prompt_base":     b.PromptBase,
		"tipo":            b.Tipo,
		"tema":            b.Tema,
		"provider":        b.Provider,
		"allowed_domains": b.AllowedDomains,
	}
}
