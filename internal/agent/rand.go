package agent

import "math/rand"

// agentRng is the package-level random source used by the built-in
// strategies. When nil, the functions below delegate to the global
// math/rand default. Use SeedAgentRng to set a deterministic source for
// reproducible arena runs.
var agentRng *rand.Rand

// SeedAgentRng sets a deterministic random source for reproducible agent behavior.
func SeedAgentRng(seed int64) {
	agentRng = rand.New(rand.NewSource(seed))
}

// ResetAgentRng reverts to the default (non-deterministic) global random source.
func ResetAgentRng() {
	agentRng = nil
}

func agentFloat64() float64 {
	if agentRng != nil {
		return agentRng.Float64()
	}
	return rand.Float64()
}

func agentIntn(n int) int {
	if agentRng != nil {
		return agentRng.Intn(n)
	}
	return rand.Intn(n)
}
