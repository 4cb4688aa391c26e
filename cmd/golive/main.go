// Command golive plans store openings backward from their go-live date.
package main

import "github.com/papapumpkin/golive/cmd"

func main() {
	cmd.Execute()
}
