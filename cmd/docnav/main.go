package main

import (
	"context"
	"os"

	"github.com/mchmarny/docnav/pkg/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background()))
}
