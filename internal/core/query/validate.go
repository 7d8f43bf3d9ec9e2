package query

import (
	"errors"

	"observafloresta/internal/core/intent"
)

// Reason classifies why a query is not actionable
type Reason int

const (
	// MissingEntity means the state or biome the kind needs was not found
	MissingEntity Reason = iota + 1
	// MissingRange means a comparison has no year range
	MissingRange
	// InvalidRange means the range ends on or before its start
	InvalidRange
	// UnrecognizedQuery means no classifier rule matched
	UnrecognizedQuery
)

var reasonNames = map[Reason]string{
	MissingEntity:     "missing_entity",
	MissingRange:      "missing_range",
	InvalidRange:      "invalid_range",
	UnrecognizedQuery: "unrecognized_query",
}

// String returns the snake case name of r
func (r Reason) String() string {
	if n, ok := reasonNames[r]; ok {
		return n
	}
	return "unknown"
}

// Remediation messages shown to the user as is
const (
	MsgMissingState  = "Não consegui identificar o estado. Por favor, especifique um estado brasileiro."
	MsgMissingTarget = "Não consegui identificar o estado ou bioma para comparar."
	MsgMissingRange  = `Não consegui identificar o intervalo de anos. Use: "Compare PA entre 2020 e 2024"`
	MsgInvalidRange  = "O ano final deve ser maior que o ano inicial."
	MsgUnrecognized  = `Não entendi sua pergunta. Tente: "Desmatamento no Pará em 2024" ou "Ranking 2024"`
	msgInvalid       = "consulta inválida"
)

// ValidationError carries the reason and the fixed remediation message
type ValidationError struct {
	Reason  Reason
	Message string
}

// Error implements error and returns the remediation message
func (e *ValidationError) Error() string {
	if e == nil || e.Message == "" {
		return msgInvalid
	}
	return e.Message
}

func fail(r Reason, msg string) error { return &ValidationError{Reason: r, Message: msg} }

// ReasonOf returns the reason of a validation failure anywhere in err's chain
func ReasonOf(err error) (Reason, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Reason, true
	}
	return 0, false
}

// Validate returns nil when q can be dispatched, else a *ValidationError
// Ranking and Biome queries are always valid, absent fields use their defaults
func Validate(q Parsed) error {
	switch q.Kind {
	case intent.StateLookup:
		if q.State == nil {
			return fail(MissingEntity, MsgMissingState)
		}
	case intent.Compare:
		if q.State == nil && q.Biome == nil {
			return fail(MissingEntity, MsgMissingTarget)
		}
		if !q.HasRange() {
			return fail(MissingRange, MsgMissingRange)
		}
		if *q.YearEnd <= *q.YearStart {
			return fail(InvalidRange, MsgInvalidRange)
		}
	case intent.Ranking, intent.Biome:
	default:
		return fail(UnrecognizedQuery, MsgUnrecognized)
	}
	return nil
}
