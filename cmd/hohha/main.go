// Command hohha encrypts or decrypts a single message with the Hohha
// Dynamic XOR cipher, mirroring original_source/hohha.c's -e/-d/-D
// front end.
package main

import (
	"os"

	"github.com/ed770878/HohhaDynamicXOR/internal/cli"
)

func main() {
	os.Exit(cli.RunHohhaMain())
}
