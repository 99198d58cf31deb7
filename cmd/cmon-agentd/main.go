package main

import (
	"log"

	"github.com/richardkiene/triton-cmon-agent/pkg/api"
)

func main() {
	if err := api.Serve(); err != nil {
		log.Fatal(err)
	}
}
