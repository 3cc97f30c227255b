package obs

import (
	"context"
	"log"
	"time"
)

type ctxKey string

// PlanIDKey carries an identifier for one planning run through the call tree,
// so adapter-level timing lines can be correlated with the run that issued them.
const PlanIDKey ctxKey = "plan_id"

// WithPlanID tags ctx with a planning-run identifier.
func WithPlanID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, PlanIDKey, id)
}

func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	planID, _ := ctx.Value(PlanIDKey).(string)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Printf("plan_id=%s op=%s dur=%dms err=%v", planID, name, dur.Milliseconds(), *errp)
			return
		}
		log.Printf("plan_id=%s op=%s dur=%dms", planID, name, dur.Milliseconds())
	}
}
