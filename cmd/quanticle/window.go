//go:build raylib

package main

import (
	"github.com/san-kum/quanticle/internal/config"
	"github.com/san-kum/quanticle/internal/params"
	"github.com/san-kum/quanticle/internal/sandbox"
	"github.com/san-kum/quanticle/internal/storage"
	"github.com/san-kum/quanticle/internal/window"
	"github.com/spf13/cobra"
)

func init() {
	extraCommands = append(extraCommands, func() *cobra.Command {
		cmd := &cobra.Command{
			Use:   "window [variant]",
			Short: "run a variant in a desktop window",
			Args:  cobra.MaximumNArgs(1),
			RunE:  runWindow,
		}
		addParamFlags(cmd)
		cmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
		return cmd
	})
}

func runWindow(cmd *cobra.Command, args []string) error {
	v, err := variantArg(args, params.VariantProjectile)
	if err != nil {
		return err
	}
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	policy, err := cfg.ValidationPolicy()
	if err != nil {
		return err
	}
	opts := window.Options{Variant: v, ConfigID: sandbox.DefaultConfigID, Policy: policy, Integrator: cfg.Integrator}
	if v != params.VariantSandbox {
		p, err := resolveParams(cmd, cfg, v)
		if err != nil {
			return err
		}
		opts.Initial = map[params.Variant]params.Parameters{v: p}
	}

	log, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer log.Sync()
	opts.Log = log
	opts.Configs = storage.New(cfg.DataDir).Configs()
	return window.Run(opts, cfg.FPS)
}
