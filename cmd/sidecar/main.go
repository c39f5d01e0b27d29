package main

import (
	"fmt"
	"os"

	"github.com/0xazure/sidecar"
)

func main() {
	if err := sidecar.RunCmd(os.Args, nil); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
