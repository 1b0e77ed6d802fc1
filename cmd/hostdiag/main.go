package main

import (
	"github.com/NVIDIA/hostdiag/pkg/cli"
)

func main() {
	cli.Execute()
}
