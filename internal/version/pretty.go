package version

import "github.com/fatih/color"

var toolColor = color.New(color.FgCyan, color.Bold)

// Pretty renders "goldiff <version>" with the tool name highlighted when
// color output is enabled.
func Pretty(v string) string {
	return toolColor.Sprint("goldiff") + " " + v
}
