package main

import (
	"fmt"
	"os"

	"github.com/pbanos/irforest/forest"
)

func (rcc *rootCmdConfig) requireFile() error {
	if rcc.file == "" {
		return fmt.Errorf("required file flag was not set")
	}
	return nil
}

func (rcc *rootCmdConfig) loadForest() (*forest.Forest, error) {
	f, err := os.Open(rcc.file)
	if err != nil {
		return nil, fmt.Errorf("opening forest file %s: %v", rcc.file, err)
	}
	defer f.Close()
	fo, err := forest.Load(f)
	if err != nil {
		return nil, fmt.Errorf("loading forest from %s: %v", rcc.file, err)
	}
	fo.SetLogger(rcc.Logf)
	return fo, nil
}

func (rcc *rootCmdConfig) saveForest(fo *forest.Forest) error {
	f, err := os.Create(rcc.file)
	if err != nil {
		return fmt.Errorf("creating forest file %s: %v", rcc.file, err)
	}
	defer f.Close()
	if err := fo.Save(f); err != nil {
		return fmt.Errorf("saving forest to %s: %v", rcc.file, err)
	}
	return nil
}
