// Package domain holds DTOs for the assistant http and service contracts
package domain

import (
	"github.com/google/uuid"

	"observafloresta/internal/core/intent"
	"observafloresta/internal/core/query"
)

// AskInput is one free form question
type AskInput struct {
	Text string `json:"text" validate:"required,max=500" example:"Qual o desmatamento no Pará em 2024?"`
}

// ParseResult is the structured reading of a question and whether it can be answered
// Reason and Message are empty when Valid is true
type ParseResult struct {
	Text       string       `json:"text" example:"Qual o desmatamento no para em 2024?"`
	Normalized string       `json:"normalized" example:"Qual o desmatamento no Pará em 2024?"`
	Query      query.Parsed `json:"query"`
	Valid      bool         `json:"valid" example:"true"`
	Reason     string       `json:"reason,omitempty" enums:"missing_entity,missing_range,invalid_range,unrecognized_query" example:"missing_entity"`
	Message    string       `json:"message,omitempty" example:"Não consegui identificar o estado. Por favor, especifique um estado brasileiro."`
}

// Answer is the reply to one question
// Data holds the data service result the text was rendered from
// Error is set when the question was not actionable or the data call failed
type Answer struct {
	ID      uuid.UUID    `json:"id" swaggertype:"string" format:"uuid"`
	Query   query.Parsed `json:"query"`
	Kind    intent.Kind  `json:"kind" swaggertype:"string" enums:"state,compare,ranking,biome,unknown" example:"state"`
	Variant string       `json:"variant,omitempty" example:"state"`
	Text    string       `json:"text"`
	Data    any          `json:"data,omitempty" swaggertype:"object"`
	Error   string       `json:"error,omitempty" example:"invalid_range"`
}

// Help is the usage text of the assistant
type Help struct {
	Text     string   `json:"text"`
	Examples []string `json:"examples"`
}
