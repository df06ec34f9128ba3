package resilience

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/riskibarqy/football-etl/internal/platform/logging"
)

// Retry runs fn until it succeeds, the policy is exhausted or permanent
// reports the error as not worth retrying. The last error is returned.
func Retry[T any](
	ctx context.Context,
	policy RetryPolicy,
	logger *logging.Logger,
	name string,
	permanent func(error) bool,
	fn func(context.Context) (T, error),
) (T, error) {
	policy = NormalizeRetryPolicy(policy)
	if logger == nil {
		logger = logging.Default()
	}

	attempt := 0
	op := func() (T, error) {
		attempt++
		out, err := fn(ctx)
		if err != nil && permanent != nil && permanent(err) {
			return out, backoff.Permanent(err)
		}
		return out, err
	}

	tries := uint(policy.Retries) + 1
	return backoff.Retry(ctx, op,
		backoff.WithBackOff(backoff.NewConstantBackOff(policy.Delay)),
		backoff.WithMaxTries(tries),
		backoff.WithMaxElapsedTime(time.Duration(tries)*(policy.Delay+time.Hour)),
		backoff.WithNotify(func(err error, next time.Duration) {
			logger.WarnContext(ctx, "attempt failed, retrying",
				"operation", name,
				"attempt", attempt,
				"max_attempts", tries,
				"retry_in", next.String(),
				"error", err,
			)
		}),
	)
}
