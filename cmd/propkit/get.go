package main

import (
	"encoding/json"
	"fmt"

	"github.com/scott-cotton/cli"
)

func runGet(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: get <path> [files]", cli.ErrUsage)
	}
	path, files := args[0], args[1:]
	for i, file := range files {
		n, err := cfg.loadTree(file)
		if err != nil {
			return err
		}
		target := n.Get(path)
		if target == nil {
			return fmt.Errorf("%s: no node at %q", file, path)
		}
		var out []byte
		if cfg.Raw {
			out, err = json.Marshal(target.RawValue())
		} else {
			out, err = json.MarshalIndent(target.Property(), "", "  ")
		}
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
