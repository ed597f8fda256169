// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package main implements the minidb cli tool. It uses the cobra package
// for cli tool implementation.
package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/spf13/cobra"

	"github.com/solidcoredata/minidb/internal/config"
	"github.com/solidcoredata/minidb/internal/dispatch"
	"github.com/solidcoredata/minidb/internal/start"
)

type rootFlags struct {
	dataDir    string
	configPath string
}

func main() {
	root := rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "minidb",
		Short: "A minimal file-backed relational database engine",
	}
	rootCmd.PersistentFlags().StringVar(&root.dataDir, "datadir", "", "root directory the database registry is built from")
	rootCmd.PersistentFlags().StringVar(&root.configPath, "config", "", "path to an optional TOML config file")

	rootCmd.AddCommand(replCmd(&root))
	rootCmd.AddCommand(runCmd(&root))
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(flags *rootFlags) (config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if flags.dataDir != "" {
		cfg.DataDir = flags.dataDir
	}
	return cfg, nil
}

func replCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Run an interactive prompt over stdin",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if err := os.Chdir(cfg.DataDir); err != nil {
				return err
			}

			d := dispatch.New(cfg, os.Stdout)
			return start.Start(context.Background(), 5*time.Second, func(ctx context.Context) error {
				return start.Interactive(ctx, d, os.Stdin, os.Stdout)
			})
		},
	}
}

func runCmd(flags *rootFlags) *cobra.Command {
	var outputPath string
	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Run a script non-interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if err := os.Chdir(cfg.DataDir); err != nil {
				return err
			}

			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			out := os.Stdout
			if outputPath != "" {
				f, err := os.Create(outputPath)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}

			d := dispatch.New(cfg, out)
			return start.Script(d, string(src))
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "file to write command output to, instead of stdout")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build metadata",
		RunE: func(_ *cobra.Command, _ []string) error {
			info, ok := debug.ReadBuildInfo()
			if !ok {
				fmt.Println("minidb: build metadata unavailable")
				return nil
			}
			fmt.Printf("minidb %s (%s)\n", info.Main.Version, info.GoVersion)
			return nil
		},
	}
}
