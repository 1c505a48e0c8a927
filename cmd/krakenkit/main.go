package main

import (
	"os"

	"github.com/krakenkit/krakenkit/internal/cli"
)

func main() {
	cli.Execute(os.Args[1:])
}
