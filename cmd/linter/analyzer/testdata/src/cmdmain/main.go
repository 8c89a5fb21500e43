package main

import (
	"log"
	"os"
)

func main() {
	if len(os.Args) > 2 {
		log.Fatal("allowed in main")
	}
	defer func() {
		os.Exit(0)
	}()
	run()
}

func run() {
	os.Exit(2) // want "os.Exit is forbidden outside main function"
}

func helper() {
	panic("still forbidden") // want "panic is forbidden"
}
