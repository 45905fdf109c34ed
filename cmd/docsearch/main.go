package main

import (
	"context"
	"os"

	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background(), os.Args[1:]))
}
