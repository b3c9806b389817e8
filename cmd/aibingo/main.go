package main

import (
	"github.com/aibingo/aibingo-go/internal/cli"
)

func main() {
	cli.Execute()
}
