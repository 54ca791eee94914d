// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Command searchquery is the CLI front end for the query core: it
// parses/plans/executes searches against a PostgreSQL-backed store,
// prints the filter menu, and runs schema migrations.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
