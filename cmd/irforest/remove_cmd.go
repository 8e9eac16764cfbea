package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func removeCmd(rootConfig *rootCmdConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "remove SUID...",
		Short: "Remove one or more samples and commit the change into the forest",
		Run: func(cmd *cobra.Command, args []string) {
			if err := rootConfig.requireFile(); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			if len(args) == 0 {
				fmt.Fprintln(os.Stderr, "at least one sample id is required")
				os.Exit(2)
			}
			f, err := rootConfig.loadForest()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			for _, suid := range args {
				if !f.Remove(suid) {
					rootConfig.Logf("sample %q was not found", suid)
				}
			}
			rootConfig.Logf("Committing...")
			f.Commit()
			if err := rootConfig.saveForest(f); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			rootConfig.Logf("Done")
		},
	}
}
