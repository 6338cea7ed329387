package main

import (
	"os"
	sys "os"
)

func helper() {
	os.Exit(2)
}

func main() {
	defer helper()
	os.Exit(1)  // want "call os.Exit\\(\\) in main function of main package"
	sys.Exit(1) // want "call os.Exit\\(\\) in main function of main package"
	func() {
		os.Exit(3) // want "call os.Exit\\(\\) in main function of main package"
	}()
}
