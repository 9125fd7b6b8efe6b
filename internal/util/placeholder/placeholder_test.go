package placeholder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		template string
		values   Values
		want     string
	}{
		{
			name:     "empty template",
			template: "",
			values:   Values{"A": "x"},
			want:     "",
		},
		{
			name:     "no values leaves template untouched",
			template: `user = "{{USER}}"`,
			values:   nil,
			want:     `user = "{{USER}}"`,
		},
		{
			name:     "single substitution",
			template: `user = "{{USER}}"`,
			values:   Values{"USER": "alice"},
			want:     `user = "alice"`,
		},
		{
			name:     "every occurrence is replaced",
			template: "{{NET}} {{NET}} {{NET}}",
			values:   Values{"NET": "testnet4"},
			want:     "testnet4 testnet4 testnet4",
		},
		{
			name:     "missing key stays unresolved",
			template: `a = "{{A}}" b = "{{B}}"`,
			values:   Values{"A": "1"},
			want:     `a = "1" b = "{{B}}"`,
		},
		{
			name:     "values are not rescanned",
			template: "{{A}}-{{B}}",
			values:   Values{"A": "{{B}}", "B": "b"},
			want:     "{{B}}-b",
		},
		{
			name:     "regex metacharacters in values are literal",
			template: "pass = {{PASS}}",
			values:   Values{"PASS": "$1.*[a]\\"},
			want:     "pass = $1.*[a]\\",
		},
		{
			name:     "numbers and booleans",
			template: "{{PORT}} {{RATE}} {{WHOLE}} {{AGG}}",
			values:   Values{"PORT": 8332, "RATE": 6.5, "WHOLE": 6.0, "AGG": true},
			want:     "8332 6.5 6.0 true",
		},
		{
			name:     "lower-case braces are not tokens",
			template: "{{ hostname }} {{A}}",
			values:   Values{"A": "x", "hostname": "h"},
			want:     "{{ hostname }} x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.template, tt.values))
		})
	}
}

func TestResolve_Idempotent(t *testing.T) {
	template := `url = "http://{{HOST}}:{{PORT}}" # {{MISSING}} {{HOST}}`
	values := Values{"HOST": "127.0.0.1", "PORT": 48332}

	first := Resolve(template, values)
	second := Resolve(template, values)

	assert.Equal(t, first, second)
}

func TestKeys(t *testing.T) {
	keys := Keys("{{B}} {{A}} {{B}} {{ not_a_key }} {{C_2}}")
	assert.Equal(t, []string{"B", "A", "C_2"}, keys)
	assert.Nil(t, Keys("no tokens here"))
}

func TestUnresolved(t *testing.T) {
	out := Resolve("{{A}} {{B}} {{C}}", Values{"B": "b"})
	assert.Equal(t, []string{"A", "C"}, Unresolved(out))
	assert.Empty(t, Unresolved(Resolve("{{A}}", Values{"A": "a"})))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "", Format(nil))
	assert.Equal(t, "10000000000000.0", Format(10000000000000.0))
	assert.Equal(t, "0.5", Format(float32(0.5)))
	assert.Equal(t, "42", Format(int64(42)))
	assert.Equal(t, "false", Format(false))
}
