package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func jsonCmd(rootConfig *rootCmdConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "json",
		Short: "Write the forest's trees as nested-array JSON to STDOUT",
		Run: func(cmd *cobra.Command, args []string) {
			if err := rootConfig.requireFile(); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			f, err := rootConfig.loadForest()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			if err := f.AsJSON(os.Stdout); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
		},
	}
}
