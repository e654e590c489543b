package styles

import (
	"os"

	"github.com/muesli/termenv"
)

var (
	stderr = termenv.NewOutput(os.Stderr)

	ERROR = func(s string) string {
		return stderr.String(s).
			Foreground(stderr.Color("9")).
			String()
	}
	WARNING = func(s string) string {
		return stderr.String(s).
			Foreground(stderr.Color("11")).
			String()
	}
)

// DisableColor makes every helper return its input unstyled.
func DisableColor() {
	stderr = termenv.NewOutput(os.Stderr, termenv.WithProfile(termenv.Ascii))
}
