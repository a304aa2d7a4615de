package main

import (
	"encoding/json"
	"fmt"

	"github.com/scott-cotton/cli"
)

func runEval(cfg *EvalConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Eval.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: eval <path> [files]", cli.ErrUsage)
	}
	path, files := args[0], args[1:]
	for i, file := range files {
		n, err := cfg.loadTree(file)
		if err != nil {
			return err
		}
		v, err := n.ValueAt(path)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		out, err := json.Marshal(v)
		if err != nil {
			return err
		}
		fmt.Fprintf(cc.Out, "%s\n", out)
		if i < len(files)-1 {
			cc.Out.Write([]byte("---\n"))
		}
	}
	return nil
}
