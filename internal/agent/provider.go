package agent

import (
	"errors"
	"fmt"

	"github.com/freeeve/space-conquest/internal/config"
)

// ErrMissingCredentials reports that an LLM-backed mode was requested
// without the provider's API key in the environment.
var ErrMissingCredentials = errors.New("missing provider credentials")

// ProviderSpec identifies one LLM backing for a player.
type ProviderSpec struct {
	Provider string
	Model    string
}

// CheckCredentials verifies that the provider's API key is present before
// any game state is created. The engine never reads the environment; this
// is the single place credentials are resolved.
func CheckCredentials(cfg *config.Config, spec ProviderSpec) error {
	if _, err := cfg.ProviderKey(spec.Provider); err != nil {
		return fmt.Errorf("%w: %v", ErrMissingCredentials, err)
	}
	return nil
}
