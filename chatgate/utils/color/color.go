// chatgate/utils/color/color.go
package color

import (
	"github.com/fatih/color"
)

var (
	promptColor = color.New(color.FgCyan, color.Bold)
	infoColor   = color.New(color.FgGreen)
	errorColor  = color.New(color.FgRed, color.Bold)
	userColor   = color.New(color.FgHiWhite)
	botColor    = color.New(color.FgHiYellow, color.Bold)
)

func ColorPrompt(s string) string {
	return promptColor.Sprint(s)
}

func ColorInfo(s string) string {
	return infoColor.Sprint(s)
}

func ColorError(s string) string {
	return errorColor.Sprint(s)
}

func ColorUser(s string) string {
	return userColor.Sprint(s)
}

func ColorBot(s string) string {
	return botColor.Sprint(s)
}

// DisableColor turns colouring off, e.g. when output is piped.
func DisableColor() {
	color.NoColor = true
}
