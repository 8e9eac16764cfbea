package main

import (
	"fmt"
	"os"

	"github.com/pbanos/irforest/sample"
	"github.com/spf13/cobra"
)

type addCmdConfig struct {
	*rootCmdConfig
	suid  string
	y     float64
	codes []string
}

func addCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &addCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add (or replace) a sample and commit it into the forest",
		Long:  `Add a sample with the given id, target and feature codes, and commit it into the forest named by --file.`,
		Run: func(cmd *cobra.Command, args []string) {
			if err := config.requireFile(); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			if config.suid == "" {
				fmt.Fprintln(os.Stderr, "required suid flag was not set")
				os.Exit(2)
			}
			codes, err := parseCodeFlags(config.codes)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			f, err := config.loadForest()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			s := &sample.Sample{SUID: config.suid, Y: config.y, XCodes: codes}
			if _, err := f.Add(s); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
			config.Logf("Committing...")
			f.Commit()
			if err := config.saveForest(f); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(6)
			}
			config.Logf("Done")
		},
	}
	cmd.PersistentFlags().StringVar(&(config.suid), "suid", "", "sample id (required)")
	cmd.PersistentFlags().Float64Var(&(config.y), "y", 0, "target value, class 1 iff y >= 0.5")
	cmd.PersistentFlags().StringArrayVar(&(config.codes), "code", nil, "CODE=VALUE for a present feature; may be repeated")
	return cmd
}
