package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/datum"
	"github.com/aretw0/datum/internal/logging"
	"github.com/aretw0/datum/pkg/codec"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Walk through the container features end to end",
	RunE:  runDemo,
}

func init() {
	demoCmd.Flags().Bool("plain", false, "Print raw markdown instead of rendering it")
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	printBanner()

	logger := logging.NewNop()
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger = logging.New(slog.LevelDebug)
	}

	var report strings.Builder
	section := func(title, body string, a ...any) {
		report.WriteString("## " + title + "\n\n")
		report.WriteString(fmt.Sprintf(body, a...))
		report.WriteString("\n\n")
	}

	// Basic construction: plain, computed, lazy, and method fields.
	d, err := datum.New([]datum.Field{
		datum.F("a", 2),
		datum.F("b", 3),
		datum.F("sum", datum.Computed(func(d *datum.Data) (any, error) {
			return d.GetOr("a", 0).(int) + d.GetOr("b", 0).(int), nil
		})),
		datum.F("product", datum.Lazy(func(d *datum.Data) (any, error) {
			return d.GetOr("a", 0).(int) * d.GetOr("b", 0).(int), nil
		})),
		datum.F("increment", datum.Method(func(d *datum.Data, args ...any) (any, error) {
			return d.GetOr("a", 0).(int) + args[0].(int), nil
		})),
		datum.F("fail", datum.Method(func(d *datum.Data, args ...any) (any, error) {
			return nil, errors.New("division by zero")
		})),
	}, datum.WithLogger(logger))
	if err != nil {
		return err
	}

	sum, _ := d.Get("sum")
	product, _ := d.Get("product")
	inc, _ := d.Call("increment", 5)
	section("Basic construction", "sum=%v product=%v increment(5)=%v", sum, product, inc)

	// Lazy cache and invalidation.
	if err := d.Set("a", 10); err != nil {
		return err
	}
	product, _ = d.Get("product")
	sum, _ = d.Get("sum")
	section("Lazy invalidation", "after a=10: sum=%v (computed once, unchanged) product=%v (recomputed)", sum, product)

	// Method error wrapping.
	if _, err := d.Call("fail"); err != nil {
		var ce *datum.ComputationError
		if errors.As(err, &ce) {
			section("Method error wrapping", "field=%q err=%v", ce.Field, ce.Err)
		}
	}

	// Watchers.
	var events []string
	d.Watch(func(field string, old, new any) {
		events = append(events, fmt.Sprintf("%s: %v -> %v", field, old, new))
	})
	if err := d.Set("b", 20); err != nil {
		return err
	}
	section("Watchers", "events: %v", events)

	// Transaction commit and rollback.
	if err := d.Transaction(func(d *datum.Data) error {
		if err := d.Set("a", 1); err != nil {
			return err
		}
		return d.Set("b", 2)
	}); err != nil {
		return err
	}
	committed := fmt.Sprintf("a=%v b=%v", d.GetOr("a", nil), d.GetOr("b", nil))

	txErr := d.Transaction(func(d *datum.Data) error {
		if err := d.Set("a", 999); err != nil {
			return err
		}
		return errors.New("boom")
	})
	section("Transactions", "after commit: %s; rollback err=%v, a=%v (restored)", committed, txErr, d.GetOr("a", nil))

	// Freeze and anti-freeze.
	if err := d.Freeze(); err != nil {
		return err
	}
	frozenErr := d.Set("a", 123)

	d2, err := datum.New([]datum.Field{
		datum.F("x", 1),
		datum.F("y", datum.AntiFreeze([]any{1, 2, 3})),
	})
	if err != nil {
		return err
	}
	if err := d2.Freeze(); err != nil {
		return err
	}
	if err := d2.Set("y", []any{1, 2, 3, 4}); err != nil {
		return err
	}
	section("Freeze", "frozen write err=%v; anti-freeze write after freeze: y=%v", frozenErr, d2.GetOr("y", nil))

	// Path access.
	d3 := datum.Empty()
	if err := d3.SetPath("foo.bar.baz", 42); err != nil {
		return err
	}
	got, _ := d3.GetPath("foo.bar.baz", nil)
	missing, _ := d3.GetPath("foo.nope", "default")
	section("Path access", "foo.bar.baz=%v foo.nope=%v", got, missing)

	// Diff and apply.
	d4, _ := datum.New([]datum.Field{datum.F("a", 1), datum.F("b", 2)})
	d5, _ := datum.New([]datum.Field{datum.F("a", 1), datum.F("b", 99)})
	patch := d5.Diff(d4)
	if err := d4.Apply(patch); err != nil {
		return err
	}
	section("Diff / apply", "patch=%v; after apply: a=%v b=%v", patch, d4.GetOr("a", nil), d4.GetOr("b", nil))

	// Snapshot.
	snap, err := d4.Snapshot()
	if err != nil {
		return err
	}
	if err := d4.Set("b", 500); err != nil {
		return err
	}
	section("Snapshot", "snapshot preserved b=%v while live b=%v", snap.GetOr("b", nil), d4.GetOr("b", nil))

	// Serialization, including a cycle.
	encoded, err := codec.MarshalJSON(d4)
	if err != nil {
		return err
	}
	c := datum.Empty()
	if err := c.Set("self", c); err != nil {
		return err
	}
	circular, err := codec.MarshalJSON(c)
	if err != nil {
		return err
	}
	section("Serialization", "d4=%s; circular=%s", encoded, circular)

	// Views.
	v := d4.View(map[string]datum.ComputeFunc{
		"double_a": func(d *datum.Data) (any, error) {
			return d.GetOr("a", 0).(int) * 2, nil
		},
		"total": func(d *datum.Data) (any, error) {
			return d.GetOr("a", 0).(int) + d.GetOr("b", 0).(int), nil
		},
	})
	doubleA, _ := v.Get("double_a")
	total, _ := v.Get("total")
	section("Views", "double_a=%v total=%v", doubleA, total)

	// Hashing frozen state.
	if err := d4.Freeze(); err != nil {
		return err
	}
	h, err := d4.Hash()
	if err != nil {
		return err
	}
	section("Hashing", "hash=%#x (requires frozen state)", h)

	if plain, _ := cmd.Flags().GetBool("plain"); plain {
		fmt.Print(report.String())
		return nil
	}
	fmt.Print(newRenderer()(report.String()))
	return nil
}
