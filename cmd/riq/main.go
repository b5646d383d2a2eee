package main

import "github.com/mchmarny/riq/pkg/cli"

func main() {
	cli.Execute()
}
