/*
Package config reads the feature-code dictionary: a YAML document
mapping integer feature codes to human-readable names. This is purely
presentation metadata. No other package in this module reads it: the
CLI and StatsJSON output print bare integer codes, and the tree and
forest packages only ever see integer codes.
*/
package config

import (
	"fmt"
	"io/ioutil"

	yaml "gopkg.in/yaml.v2"
)

// Codes maps a feature code to its display name.
type Codes map[int]string

// ReadCodes parses a YAML document of the form:
//
//	codes:
//	  1: age_over_40
//	  2: has_prior_claim
//
// into a Codes dictionary.
func ReadCodes(doc []byte) (Codes, error) {
	metadata := struct {
		Codes map[int]string
	}{}
	if err := yaml.Unmarshal(doc, &metadata); err != nil {
		return nil, fmt.Errorf("config: parsing feature codes: %v", err)
	}
	if metadata.Codes == nil {
		return nil, fmt.Errorf("config: feature codes file has no codes property")
	}
	return Codes(metadata.Codes), nil
}

// ReadCodesFromFile reads and parses the feature-code dictionary at
// filepath.
func ReadCodesFromFile(filepath string) (Codes, error) {
	doc, err := ioutil.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("config: reading feature codes file %s: %v", filepath, err)
	}
	codes, err := ReadCodes(doc)
	if err != nil {
		return nil, fmt.Errorf("config: parsing feature codes file %s: %v", filepath, err)
	}
	return codes, nil
}

// NameFor returns the display name for code, or its decimal string if
// the dictionary has no entry for it.
func (c Codes) NameFor(code int) string {
	if name, ok := c[code]; ok {
		return name
	}
	return fmt.Sprintf("%d", code)
}
