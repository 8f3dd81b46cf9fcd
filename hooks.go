package datum

// Hooks defines optional callbacks for container observability. All fields
// may be nil. Hooks run synchronously on the mutating goroutine; keep them
// cheap.
type Hooks struct {
	// OnMutation fires after a successful Set, after watchers ran.
	OnMutation func(field string, old, new any)

	// OnLazyEval fires when a lazy field's function is (re)evaluated.
	OnLazyEval func(field string)

	// OnFreeze fires once, when the container transitions to frozen.
	OnFreeze func()

	// OnTransaction fires when a transaction scope ends.
	OnTransaction func(committed bool)
}
