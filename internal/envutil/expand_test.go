package envutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandWith(t *testing.T) {
	env := map[string]string{
		"TEMP":         `C:\Users\kio\AppData\Local\Temp`,
		"LOCALAPPDATA": `C:\Users\kio\AppData\Local`,
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"percent form", `%TEMP%`, `C:\Users\kio\AppData\Local\Temp`},
		{"percent lower case", `%temp%\x`, `C:\Users\kio\AppData\Local\Temp\x`},
		{"dollar form", `$LOCALAPPDATA\pip`, `C:\Users\kio\AppData\Local\pip`},
		{"braced form", `${TEMP}`, `C:\Users\kio\AppData\Local\Temp`},
		{"unknown percent kept", `%NOPE%\a`, `%NOPE%\a`},
		{"unknown dollar kept", `$NOPE`, `$NOPE`},
		{"unterminated percent", `50%`, `50%`},
		{"plain", `C:\Windows`, `C:\Windows`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expandWith(tt.in, lookup))
		})
	}
}
