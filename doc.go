/*
Package datum provides a reactive, attribute-style data container.

A Data instance maps identifier-shaped field names to values. Fields can be
plain values, one-shot computed values, memoized lazy values, bound methods,
or anti-freeze fields that stay writable after the container is frozen. On
top of that, the container offers change notification, deep freezing,
transactional mutation with rollback, dot-path navigation, structural
diff/patch, and stable hashing of frozen state.

# Concept

Field behavior is declared at construction time through markers. A Computed
field is evaluated exactly once while the container is being built. A Lazy
field is evaluated on first read and recomputed after any mutation. A Method
field binds a function to the container. AntiFreeze exempts a field from the
freeze transform and from the frozen-write guard.

# Usage

	d, err := datum.New([]datum.Field{
		datum.F("a", 2),
		datum.F("b", 3),
		datum.F("sum", datum.Computed(func(d *datum.Data) (any, error) {
			a, _ := d.Get("a")
			b, _ := d.Get("b")
			return a.(int) + b.(int), nil
		})),
	})
	if err != nil {
		log.Fatal(err)
	}

	sum, _ := d.Get("sum") // 5

	err = d.Transaction(func(d *datum.Data) error {
		if err := d.Set("a", 10); err != nil {
			return err
		}
		return d.Set("b", 20)
	})

	d.Freeze()
	h, _ := d.Hash()

The execution model is single-threaded and synchronous. Instances provide no
internal locking; callers that share a container across goroutines must
synchronize externally.
*/
package datum

// Version is the library version.
const Version = "2.1.0"
