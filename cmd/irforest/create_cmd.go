package main

import (
	"fmt"
	"os"

	"github.com/pbanos/irforest/forest"
	"github.com/spf13/cobra"
)

type createCmdConfig struct {
	*rootCmdConfig
	nTrees int
}

func createCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &createCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new, empty forest snapshot",
		Long:  `Create a new forest of empty trees and write it to the file named by --file.`,
		Run: func(cmd *cobra.Command, args []string) {
			if err := config.requireFile(); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			config.Logf("Creating a forest of %d trees...", config.nTrees)
			f := forest.Create(config.nTrees)
			if err := config.saveForest(f); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			config.Logf("Done")
		},
	}
	cmd.PersistentFlags().IntVarP(&(config.nTrees), "trees", "n", 10, "number of trees in the new forest")
	return cmd
}
