package main

import (
	"os"

	"github.com/htol/booksdb/app"
)

func main() {
	os.Exit(app.CLI(os.Args[1:]))
}
