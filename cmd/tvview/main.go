// Command tvview shows a text file, a script's output or a message in a
// full-screen terminal viewer and exits with the user's decision.
package main

import (
	"os"

	"github.com/Iron-Ham/tvview/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
