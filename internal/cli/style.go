package cli

import (
	"github.com/fatih/color"
)

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	failColor = color.New(color.FgRed)
	headColor = color.New(color.FgBlue, color.Bold)
	idColor   = color.New(color.FgCyan)
	dimColor  = color.New(color.Faint)
)

func okMark() string   { return okColor.Sprint("✓") }
func warnMark() string { return warnColor.Sprint("!") }
func failMark() string { return failColor.Sprint("✗") }
func skipMark() string { return dimColor.Sprint("-") }
