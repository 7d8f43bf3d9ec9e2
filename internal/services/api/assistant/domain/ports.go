package domain

import "context"

// ServicePort is consumed by handlers and the ask command
type ServicePort interface {
	Parse(text string) ParseResult
	Ask(ctx context.Context, text string) (Answer, error)
	Help() Help
}
