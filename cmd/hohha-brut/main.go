// Command hohha-brut recovers a Hohha Dynamic XOR key body and its
// derived value from known plaintext/ciphertext samples, mirroring
// original_source/hohha_brut.c but reading a file of samples rather
// than a single -S/-m/-x triple, since the recovery engine requires
// several samples to converge.
package main

import (
	"os"

	"github.com/ed770878/HohhaDynamicXOR/internal/cli"
)

func main() {
	os.Exit(cli.RunHohhaBrutMain())
}
