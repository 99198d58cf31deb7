package main

import "github.com/richardkiene/triton-cmon-agent/pkg/cli"

func main() {
	cli.Execute()
}
