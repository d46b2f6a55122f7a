// Package agent wires the FEPS episodic memory to a host text-generation
// provider: it keeps the observation history, checks each prediction against
// what actually happened, and feeds the outcome back into the memory.
package agent

import "context"

// TextGenerator is the opaque external collaborator: submit a prompt,
// receive generated text. The module never depends on a concrete provider.
type TextGenerator interface {
	// Generate submits a prompt and returns the generated text.
	Generate(ctx context.Context, prompt string) (string, error)

	// Name returns the provider's identifier, used for logging.
	Name() string
}
