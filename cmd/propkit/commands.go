package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "propkit").
		WithSynopsis("propkit [opts] command [opts]").
		WithDescription("propkit is a tool for working with property trees.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return propkitMain(cfg, cc, args)
		}).
		WithSubs(
			EvalCommand(cfg),
			GetCommand(cfg),
			ValidateCommand(cfg),
			SnapshotCommand(cfg),
			DiffCommand(cfg))
}

func EvalCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &EvalConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("eval").
		WithAliases("e", "ev").
		WithSynopsis("eval <path> [files]").
		WithDescription("Evaluate the value at a dotted path").
		WithRun(func(cc *cli.Context, args []string) error {
			return runEval(cfg, cc, args)
		})
	cfg.Eval = cmd
	return cmd
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("get").
		WithAliases("g", "ge").
		WithSynopsis("get <path> [files]").
		WithDescription("get the subtree at a dotted path").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return runGet(cfg, cc, args)
		})
	cfg.Get = cmd
	return cmd
}

func ValidateCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ValidateConfig{MainConfig: mainCfg, Deep: true}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("validate").
		WithAliases("v", "val").
		WithSynopsis("validate [files]").
		WithDescription("evaluate constraints and report failures").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return runValidate(cfg, cc, args)
		})
	cfg.Validate = cmd
	return cmd
}

func SnapshotCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SnapshotConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("snapshot").
		WithAliases("s", "snap").
		WithSynopsis("snapshot [files]").
		WithDescription("print evaluated leaf values keyed by path").
		WithRun(func(cc *cli.Context, args []string) error {
			return runSnapshot(cfg, cc, args)
		})
	cfg.Snapshot = cmd
	return cmd
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("diff").
		WithAliases("d", "di").
		WithSynopsis("diff a b").
		WithDescription("diff two property trees").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return runDiff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}
