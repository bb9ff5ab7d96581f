package rsql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeComponent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"test", "test"},
		{"a b", "a%20b"},
		{"a+b", "a%2Bb"},
		{"a/b?c#d&e=f", "a%2Fb%3Fc%23d%26e%3Df"},
		{"-_.!~*'()", "-_.!~*'()"},
		{"gender==female;country=in=(Australia,New Zealand)", "gender%3D%3Dfemale%3Bcountry%3Din%3D(Australia%2CNew%20Zealand)"},
		{"country=in=%28a,b%29", "country%3Din%3D%2528a%2Cb%2529"},
		{"é", "%C3%A9"},
		{"[0]", "%5B0%5D"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeComponent(tt.in))
		})
	}
}

func TestUnescapeComponent_RoundTrip(t *testing.T) {
	inputs := []string{
		"gender==female;country=in=(Australia,New Zealand)",
		"country=in=%28a,b%29",
		"a+b c",
		"Zürich",
	}

	for _, in := range inputs {
		got, err := UnescapeComponent(EscapeComponent(in))
		require.NoError(t, err)
		assert.Equal(t, in, got)
	}
}
