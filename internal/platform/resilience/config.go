package resilience

import "time"

// RetryPolicy bounds how often a failed pipeline run is attempted again.
type RetryPolicy struct {
	Retries int
	Delay   time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Retries: 2,
		Delay:   5 * time.Minute,
	}
}

func NormalizeRetryPolicy(p RetryPolicy) RetryPolicy {
	defaults := DefaultRetryPolicy()
	if p.Retries < 0 {
		p.Retries = defaults.Retries
	}
	if p.Delay <= 0 {
		p.Delay = defaults.Delay
	}
	return p
}
