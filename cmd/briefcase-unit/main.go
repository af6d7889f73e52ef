// Command briefcase-unit runs the briefcase access-control unit on simulated hardware.
package main

import "github.com/oshokin/briefcase-alarm/cmd/briefcase-unit/cmd"

func main() {
	cmd.Execute()
}
