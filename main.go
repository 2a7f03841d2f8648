package main

import (
	"log"

	"github.com/MohamedB94/scrapper-hellowork/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
