package main

import (
	"os"

	"github.com/tphakala/go-netsuite/internal/cli"
)

var version = "dev"

func main() {
	if err := cli.Execute(cli.NewRootCmd(version, cli.DefaultFactory)); err != nil {
		os.Exit(1)
	}
}
