package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func statsCmd(rootConfig *rootCmdConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Write per-tree shape statistics as JSON to STDOUT",
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
			if err := f.StatsJSON(os.Stdout); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
		},
	}
}
