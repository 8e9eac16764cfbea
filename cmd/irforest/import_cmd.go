package main

import (
	"fmt"
	"os"
	"strings"

	mgo "gopkg.in/mgo.v2"

	"github.com/pbanos/irforest/pkg/bio"
	"github.com/pbanos/irforest/pkg/bio/mongo"
	biosql "github.com/pbanos/irforest/pkg/bio/sql"
	"github.com/pbanos/irforest/pkg/bio/sql/pgadapter"
	"github.com/pbanos/irforest/pkg/bio/sql/sqlite3adapter"
	"github.com/pbanos/irforest/sample"
	"github.com/spf13/cobra"
)

type importCmdConfig struct {
	*rootCmdConfig
	input string
}

func importCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &importCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Bulk-add samples into the forest and commit them",
		Long: `Read samples from a CSV file, SQLite3 (.db) file, PostgreSQL
(postgresql://) or MongoDB (mongodb://) source, add them all and
commit them into the forest named by --file in one pass.`,
		Run: func(cmd *cobra.Command, args []string) {
			if err := config.requireFile(); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			samples, err := config.readSamples()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			f, err := config.loadForest()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			config.Logf("Adding %d samples...", len(samples))
			for _, s := range samples {
				if _, err := f.Add(s); err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(4)
				}
			}
			config.Logf("Committing...")
			f.Commit()
			if err := config.saveForest(f); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
			config.Logf("Done")
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.input), "input", "i", "", "path to a CSV (.csv) or SQLite3 (.db) file, or a postgresql:// or mongodb:// connection URL with samples to import (defaults to STDIN, interpreted as CSV)")
	return cmd
}

func (icc *importCmdConfig) readSamples() ([]*sample.Sample, error) {
	switch {
	case strings.HasPrefix(icc.input, "postgresql://"):
		return icc.sqlSamples(func() (biosql.Adapter, error) { return pgadapter.New(icc.input) })
	case strings.HasPrefix(icc.input, "mongodb://"):
		return icc.mongoSamples()
	case strings.HasSuffix(icc.input, ".db"):
		return icc.sqlSamples(func() (biosql.Adapter, error) { return sqlite3adapter.New(icc.input) })
	default:
		icc.Logf("Reading samples from %s as CSV...", icc.inputDescription())
		return bio.ReadCSVSamplesFromFilePath(icc.input)
	}
}

func (icc *importCmdConfig) sqlSamples(open func() (biosql.Adapter, error)) ([]*sample.Sample, error) {
	icc.Logf("Opening %s to read samples...", icc.input)
	adapter, err := open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %v", icc.input, err)
	}
	defer adapter.Close()
	if err := adapter.EnsureSchema(); err != nil {
		return nil, err
	}
	var samples []*sample.Sample
	err = adapter.IterateSamples(func(s *sample.Sample) error {
		samples = append(samples, s)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading samples from %s: %v", icc.input, err)
	}
	return samples, nil
}

func (icc *importCmdConfig) mongoSamples() ([]*sample.Sample, error) {
	icc.Logf("Connecting to %s to read samples...", icc.input)
	session, err := mgo.Dial(icc.input)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %v", icc.input, err)
	}
	defer session.Close()
	src, err := mongo.Open(session)
	if err != nil {
		return nil, err
	}
	var samples []*sample.Sample
	err = src.IterateSamples(func(s *sample.Sample) error {
		samples = append(samples, s)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading samples from %s: %v", icc.input, err)
	}
	return samples, nil
}

func (icc *importCmdConfig) inputDescription() string {
	if icc.input == "" {
		return "STDIN"
	}
	return icc.input
}
