package service

import "context"

// Prompter defines the interface for interactive confirmations. Every
// irreversible step of the release workflow is gated on one of these.

type Prompter interface {
	// Confirm asks a yes/no question and reports the answer. Anything
	// other than an explicit yes is a decline.
	Confirm(ctx context.Context, question string) (bool, error)
	// Input asks for a free-form line of text.
	Input(ctx context.Context, prompt string) (string, error)
}
