package main

import (
	"os"

	"github.com/milgraph/milgraph/cmd/milgraph"
)

func main() {
	if err := milgraph.Execute(); err != nil {
		os.Exit(1)
	}
}
