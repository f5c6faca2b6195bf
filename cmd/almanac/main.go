// Command almanac computes sexagenary pillars, solar terms and nine-star
// profiles.
package main

import "github.com/papapumpkin/almanac/cmd"

func main() {
	cmd.Execute()
}
