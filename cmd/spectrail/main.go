package main

import (
	"github.com/spectrail-labs/spectrail-cli/internal/adapters/driving/cli"
)

func main() {
	cli.Execute()
}
