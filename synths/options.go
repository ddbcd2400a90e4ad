package synths

import (
	"github.com/HishamYahya/gollm/cmds"
	"github.com/HishamYahya/gollm/configs"
	"github.com/HishamYahya/gollm/generators"
	"github.com/HishamYahya/gollm/vars"
)

// Options tune one Def call. The zero value means: default generator,
// greedy decoding, configured attempt budget, cache enabled.
type Options struct {
	// Model overrides the default generator.
	Model string
	// Sampling is passed through to the generator.
	Sampling *generators.SamplingParams
	// MaxAttempts overrides the configured attempt budget.
	MaxAttempts int
	// DisableCache skips the lookup. The result is still written back,
	// replacing whatever was cached.
	DisableCache bool
}

var maxAttemptsFlag = cmds.Var[int]("-max-attempts")

// MaxAttempts is the default generate-validate attempt budget.
type MaxAttempts int

func (Module) MaxAttempts(
	loader configs.Loader,
) MaxAttempts {
	return vars.FirstNonZero(
		MaxAttempts(*maxAttemptsFlag),
		configs.First[MaxAttempts](loader, "max_attempts"),
		3,
	)
}
