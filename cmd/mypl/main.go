package main

import (
	"os"

	"github.com/msto63/mypl/cmd/mypl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
