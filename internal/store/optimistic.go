package store

// applyOptimistic runs an optimistic update: capture the previous state,
// apply the proposed change so readers see it immediately, run the async
// effect, and restore the exact previous state when the effect fails. The
// failure mode guarded against is partial application, where the change
// stays visible without ever having been persisted remotely.
func applyOptimistic[T any](snapshot func() T, restore func(T), apply func(), effect func() error) error {
	prev := snapshot()
	apply()
	if err := effect(); err != nil {
		restore(prev)
		return err
	}
	return nil
}
