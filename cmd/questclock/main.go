// Command questclock is a terminal countdown timer with a session history.
package main

import "github.com/questclock/questclock/internal/cli"

func main() {
	cli.Execute()
}
