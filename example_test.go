package datum_test

import (
	"fmt"
	"log"

	"github.com/aretw0/datum"
)

// ExampleNew demonstrates plain, computed, and lazy fields together.
func ExampleNew() {
	d, err := datum.New([]datum.Field{
		datum.F("a", 2),
		datum.F("b", 3),
		datum.F("sum", datum.Computed(func(d *datum.Data) (any, error) {
			return d.GetOr("a", 0).(int) + d.GetOr("b", 0).(int), nil
		})),
		datum.F("product", datum.Lazy(func(d *datum.Data) (any, error) {
			return d.GetOr("a", 0).(int) * d.GetOr("b", 0).(int), nil
		})),
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(d.GetOr("sum", nil))
	fmt.Println(d.GetOr("product", nil))

	// Any mutation invalidates lazy caches; computed fields never change.
	if err := d.Set("a", 10); err != nil {
		log.Fatal(err)
	}
	fmt.Println(d.GetOr("sum", nil))
	fmt.Println(d.GetOr("product", nil))

	// Output:
	// 5
	// 6
	// 5
	// 30
}

// ExampleData_Transaction shows rollback on failure.
func ExampleData_Transaction() {
	d, err := datum.New([]datum.Field{datum.F("balance", 100)})
	if err != nil {
		log.Fatal(err)
	}

	err = d.Transaction(func(d *datum.Data) error {
		if err := d.Set("balance", 0); err != nil {
			return err
		}
		return fmt.Errorf("insufficient funds")
	})

	fmt.Println(err)
	fmt.Println(d.GetOr("balance", nil))

	// Output:
	// insufficient funds
	// 100
}

// ExampleData_SetPath demonstrates dot-path access with auto-created
// intermediate containers.
func ExampleData_SetPath() {
	d := datum.Empty()
	if err := d.SetPath("foo.bar.baz", 42); err != nil {
		log.Fatal(err)
	}

	v, _ := d.GetPath("foo.bar.baz", nil)
	fmt.Println(v)

	missing, _ := d.GetPath("foo.nope", "default")
	fmt.Println(missing)

	// Output:
	// 42
	// default
}
