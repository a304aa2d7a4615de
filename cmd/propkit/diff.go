package main

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

func runDiff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff a b", cli.ErrUsage)
	}
	a, err := cfg.loadTree(args[0])
	if err != nil {
		return err
	}
	b, err := cfg.loadTree(args[1])
	if err != nil {
		return err
	}

	if cfg.Patch {
		patch, err := a.Diff(b)
		if err != nil {
			return err
		}
		fmt.Fprintf(cc.Out, "%s\n", patch)
		return nil
	}

	snapA, err := a.Snapshot()
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	snapB, err := b.Snapshot()
	if err != nil {
		return fmt.Errorf("%s: %w", args[1], err)
	}

	colored := cfg.useColor(cc.Out)
	keys := map[string]bool{}
	for k := range snapA {
		keys[k] = true
	}
	for k := range snapB {
		keys[k] = true
	}
	sorted := make([]string, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	for _, k := range sorted {
		va, inA := snapA[k]
		vb, inB := snapB[k]
		switch {
		case !inA:
			fmt.Fprintf(cc.Out, "+ %s: %v\n", k, vb)
		case !inB:
			fmt.Fprintf(cc.Out, "- %s: %v\n", k, va)
		case fmt.Sprint(va) == fmt.Sprint(vb):
		default:
			fmt.Fprintf(cc.Out, "~ %s: %s\n", k, stringDiff(fmt.Sprint(va), fmt.Sprint(vb), colored))
		}
	}
	return nil
}

// stringDiff renders a character-level diff of two leaf values, colored
// when the output is a terminal.
func stringDiff(from, to string, colored bool) string {
	dmp := diffpatch.New()
	diffs := dmp.DiffMain(from, to, false)
	out := ""
	for _, d := range diffs {
		switch d.Type {
		case diffpatch.DiffInsert:
			if colored {
				out += color.GreenString("%s", d.Text)
			} else {
				out += "{+" + d.Text + "+}"
			}
		case diffpatch.DiffDelete:
			if colored {
				out += color.RedString("%s", d.Text)
			} else {
				out += "{-" + d.Text + "-}"
			}
		case diffpatch.DiffEqual:
			out += d.Text
		}
	}
	return out
}
