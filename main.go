package main

import (
	"os"

	"github.com/structviz/cifview/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
