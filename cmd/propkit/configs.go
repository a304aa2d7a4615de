package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"

	"github.com/propkit/propkit/bundle"
	"github.com/propkit/propkit/node"
	"github.com/propkit/propkit/ops"
)

type MainConfig struct {
	J bool `cli:"name=j aliases=json desc='read inputs as serialized property trees (json)'"`
	Y bool `cli:"name=y aliases=yaml desc='read inputs as yaml data bundles'"`

	Color bool `cli:"name=color desc='force colored output'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

// loadTree reads one input file into a registry-backed node. Explicit
// format flags win; otherwise the extension decides, json by default.
func (cfg *MainConfig) loadTree(path string) (*node.Node, error) {
	ext := filepath.Ext(path)
	asYAML := cfg.Y || (!cfg.J && (ext == ".yaml" || ext == ".yml"))
	if asYAML {
		p, err := bundle.LoadFile(path)
		if err != nil {
			return nil, err
		}
		return node.New(p, ops.Std())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	n, err := node.FromJSON(data)
	if err != nil {
		return nil, err
	}
	n.SetRegistry(ops.Std())
	return n, nil
}

// useColor reports whether to colorize output on w: forced by -color,
// otherwise on when w is a terminal.
func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

type EvalConfig struct {
	*MainConfig

	Eval *cli.Command
}

type GetConfig struct {
	*MainConfig

	Raw bool `cli:"name=raw desc='print the stored value without evaluating'"`

	Get *cli.Command
}

type ValidateConfig struct {
	*MainConfig

	Deep bool `cli:"name=deep desc='validate the whole subtree (default on)'"`

	Validate *cli.Command
}

type SnapshotConfig struct {
	*MainConfig

	Snapshot *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Patch bool `cli:"name=patch desc='print the json merge patch instead of a value diff'"`

	Diff *cli.Command
}
