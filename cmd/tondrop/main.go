package main

import (
	"github.com/tondrop/tondrop-go/internal/cli"
)

func main() {
	cli.Execute()
}
