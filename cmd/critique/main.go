package main

import (
	"os"

	"github.com/dshills/critique/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
