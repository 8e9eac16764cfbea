package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func validateCmd(rootConfig *rootCmdConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Audit the forest's structure against its invariants",
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
			report := f.Validate()
			for _, e := range report.Errors {
				fmt.Fprintln(os.Stderr, e)
			}
			if !report.OK() {
				os.Exit(3)
			}
			fmt.Println("ok")
		},
	}
}
