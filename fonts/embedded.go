package fonts

import (
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Embedded fallbacks from the Go font family, used when no font file is configured.

// Regular returns the Go Regular TrueType data.
func Regular() []byte { return goregular.TTF }

// Bold returns the Go Bold TrueType data.
func Bold() []byte { return gobold.TTF }

// Mono returns the Go Mono TrueType data.
func Mono() []byte { return gomono.TTF }
