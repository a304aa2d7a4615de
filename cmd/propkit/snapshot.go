package main

import (
	"encoding/json"
	"fmt"

	"github.com/scott-cotton/cli"
)

func runSnapshot(cfg *SnapshotConfig, cc *cli.Context, args []string) error {
	files, err := cfg.Snapshot.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: snapshot [files]", cli.ErrUsage)
	}
	for i, file := range files {
		n, err := cfg.loadTree(file)
		if err != nil {
			return err
		}
		snap, err := n.Snapshot()
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		out, err := json.MarshalIndent(snap, "", "  ")
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
