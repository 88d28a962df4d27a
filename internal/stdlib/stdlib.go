// Package stdlib embeds the prelude macros and the REPL help text.
package stdlib

import _ "embed"

// Prelude is a macro file loaded into every runtime unless disabled.
//
//go:embed prelude.rpnc
var Prelude string

// Help is the REPL :help text.
//
//go:embed help.txt
var Help string
