// Command annotext is the offline rendering and narration CLI.
package main

import "github.com/annotext/annotext/internal/interfaces/cli"

func main() {
	cli.Execute()
}
