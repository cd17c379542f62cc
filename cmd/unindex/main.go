package main

import (
	"fmt"
	"os"

	"github.com/sspencer/unindex"
)

func main() {
	if err := unindex.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
