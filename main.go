package main

import (
	"log"

	"github.com/diasm3/customer-cs/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
