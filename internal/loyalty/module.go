package loyalty

import (
	"go.uber.org/fx"

	"github.com/fideleatome/loyalty/internal/config"
)

// Module provides the configured tier policy to the fx container.
var Module = fx.Provide(newPolicy)

type policyParams struct {
	fx.In

	Config *config.Config
}

func newPolicy(p policyParams) (TierPolicy, error) {
	return ForName(p.Config.LoyaltyPolicy)
}
