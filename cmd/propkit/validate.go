package main

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
)

func runValidate(cfg *ValidateConfig, cc *cli.Context, args []string) error {
	files, err := cfg.Validate.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: validate [files]", cli.ErrUsage)
	}
	ok, fail := fmt.Sprintf, fmt.Sprintf
	if cfg.useColor(cc.Out) {
		ok = color.GreenString
		fail = color.RedString
	}
	failed := false
	for _, file := range files {
		n, err := cfg.loadTree(file)
		if err != nil {
			return err
		}
		if !cfg.Deep {
			res := n.Validate()
			if res.Valid {
				fmt.Fprintf(cc.Out, "%s: %s\n", file, ok("ok"))
				continue
			}
			failed = true
			for _, key := range sortedKeys(res.Errors) {
				fmt.Fprintf(cc.Out, "%s: %s: %s\n", file, fail(key), res.Errors[key])
			}
			continue
		}
		res := n.ValidateDeep()
		if res.Valid {
			fmt.Fprintf(cc.Out, "%s: %s\n", file, ok("ok"))
			continue
		}
		failed = true
		for _, path := range sortedKeys(res.Errors) {
			for _, key := range sortedKeys(res.Errors[path]) {
				fmt.Fprintf(cc.Out, "%s: %s: %s: %s\n",
					file, fail(path), key, res.Errors[path][key])
			}
		}
	}
	if failed {
		return fmt.Errorf("validation failed")
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
