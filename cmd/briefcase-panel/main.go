// Command briefcase-panel drives a running briefcase unit through its front panel.
package main

import "github.com/oshokin/briefcase-alarm/cmd/briefcase-panel/cmd"

func main() {
	cmd.Execute()
}
