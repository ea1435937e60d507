// Command lingo runs the vocabulary service and its admin tooling.
package main

import (
	"os"

	"github.com/heartmarshall/lingo-backend/cmd/lingo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
