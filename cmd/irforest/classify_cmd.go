package main

import (
	"fmt"
	"os"

	"github.com/pbanos/irforest/sample"
	"github.com/spf13/cobra"
)

type classifyCmdConfig struct {
	*rootCmdConfig
	codes   []string
	partial int
}

func classifyCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &classifyCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify a set of feature codes against the forest",
		Run: func(cmd *cobra.Command, args []string) {
			if err := config.requireFile(); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			codes, err := parseCodeFlags(config.codes)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			f, err := config.loadForest()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			s := &sample.Sample{XCodes: codes}
			var prediction float64
			if config.partial > 0 {
				prediction = f.ClassifyPartial(s, config.partial)
			} else {
				prediction = f.Classify(s)
			}
			fmt.Println(prediction)
		},
	}
	cmd.PersistentFlags().StringArrayVar(&(config.codes), "code", nil, "CODE=VALUE for a present feature; may be repeated")
	cmd.PersistentFlags().IntVar(&(config.partial), "partial", 0, "classify using only the first N trees instead of the whole forest")
	return cmd
}
