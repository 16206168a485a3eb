// Command claimcheck reports resources claimed again inside their own claim.
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"omibyte.io/blinky/analysis/claimcheck"
)

func main() {
	singlechecker.Main(claimcheck.Analyzer)
}
