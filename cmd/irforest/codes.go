package main

import (
	"fmt"
	"strconv"
	"strings"
)

// parseCodeFlags turns a slice of "CODE=VALUE" strings, as repeated
// --code flags arrive, into a feature-code map.
func parseCodeFlags(raw []string) (map[int]float64, error) {
	codes := make(map[int]float64, len(raw))
	for _, kv := range raw {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid --code value %q, expected CODE=VALUE", kv)
		}
		code, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("invalid feature code %q: %v", parts[0], err)
		}
		v, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid feature value %q for code %d: %v", parts[1], code, err)
		}
		codes[code] = v
	}
	return codes, nil
}
