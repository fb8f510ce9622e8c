package main

import (
	"log"
	"os"

	"github.com/nullmove/tairitsu/pkg/protocol"
)

func main() {
	log.SetFlags(0)
	p := protocol.New()
	if err := p.Run(os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}
