// Command hohha-crc computes the CRC32 of a message, a raw key body, or
// the body embedded in a Hohha key blob, mirroring
// original_source/hohha_crc.c.
package main

import (
	"os"

	"github.com/ed770878/HohhaDynamicXOR/internal/cli"
)

func main() {
	os.Exit(cli.RunHohhaCRCMain())
}
