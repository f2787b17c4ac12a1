/*
Package resilience provides a circuit breaker for outbound calls.

# Overview

The remote press client wraps every call to a signal's status server in a
Breaker, so an operator script hammering a dead or overloaded signal fails
fast instead of stacking retries.

# Usage

	breaker := resilience.New("press", resilience.Settings{
		Timeout: 10 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	result, err := resilience.Do(ctx, breaker, func(ctx context.Context) (*PressResult, error) {
		return client.press(ctx)
	})

# States

	Closed --[failures]-> Open --[timeout]-> Half-Open --[successes]-> Closed
	                                           |
	                                    [failure]
	                                           |
	                                           v
	                                         Open

Calls cancelled by the caller are not counted as failures.
*/
package resilience
