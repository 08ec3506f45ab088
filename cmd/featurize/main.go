// Package main provides the featurize CLI: fit a feature transformation
// state from an HR dataset and apply it to individual records.
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
