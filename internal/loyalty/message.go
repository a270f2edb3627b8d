package loyalty

import (
	"fmt"
	"strings"

	"github.com/fideleatome/loyalty/internal/domain/model"
)

// Message builds the user-facing text for one accrual outcome. The format is
// an observable contract consumed by the scanning terminals, not cosmetics.
func Message(policy TierPolicy, pointsAdded int, eval model.Evaluation) string {
	if len(eval.Rewards) > 0 {
		names := make([]string, len(eval.Rewards))
		for i, rt := range eval.Rewards {
			names[i] = policy.RewardName(rt)
		}
		return "Félicitations ! " + strings.Join(names, " + ")
	}

	added := "Point ajouté"
	if pointsAdded > 1 {
		added = fmt.Sprintf("%d points ajoutés", pointsAdded)
	}
	remaining, next := policy.NextThreshold(eval.NewPoints)
	return fmt.Sprintf("%s ! %d points - Plus que %d pour %s", added, eval.NewPoints, remaining, policy.RewardName(next))
}
