// Command surgestat is the offline companion of the verifier service. It
// reports the latest forecast cycle and verifies station files listed in a
// YAML manifest.
//
// Usage:
//
//	surgestat cycle --at 2024-04-26T12:00:00Z
//	surgestat verify --manifest stations.yaml
//	surgestat pairs --manifest stations.yaml > pairs.jsonl
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
