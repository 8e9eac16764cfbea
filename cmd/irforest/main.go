package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const (
	// VersionMajor is the major number in irforest's version
	VersionMajor = 0
	// VersionMinor is the minor number in irforest's version
	VersionMinor = 1
	// VersionPatch is the patch number in irforest's version
	VersionPatch = 0
)

type rootCmdConfig struct {
	verbose bool
	file    string
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "irforest",
		Short: "irforest maintains an incremental binary-classification random forest",
		Long:  `A tool to create, feed, query and inspect an incremental random forest from the command line`,
	}
	config := &rootCmdConfig{}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "")
	rootCmd.PersistentFlags().StringVarP(&(config.file), "file", "f", "", "path to the forest snapshot file (required)")
	rootCmd.AddCommand(
		versionCmd(),
		createCmd(config),
		importCmd(config),
		addCmd(config),
		removeCmd(config),
		classifyCmd(config),
		validateCmd(config),
		jsonCmd(config),
		statsCmd(config),
	)
	return rootCmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of irforest",
		Long:  `All software has versions. This is irforest's`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("irforest v%d.%d.%d\n", VersionMajor, VersionMinor, VersionPatch)
		},
	}
}
