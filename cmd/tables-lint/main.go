// Checks the static engine tables (points, streak bindings, achievement
// definitions, celebration mappings) for gaps. Run it in CI before a
// deploy; exits non-zero when any enum value lacks a table entry.
package main

import (
	"fmt"
	"os"

	"finhabit/services"
)

func main() {
	if err := services.ValidateTables(); err != nil {
		fmt.Println("tables:", err)
		os.Exit(1)
	}
	fmt.Println("tables: OK")
}
