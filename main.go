package main

import (
	"os"

	"github.com/confectlab/confect/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
