package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseWeekday(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"0", 0, true},
		{"6", 6, true},
		{"7", 0, false},
		{"mon", 0, true},
		{"Tuesday", 1, true},
		{"SUN", 6, true},
		{"su", 0, false},
		{"xyz", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseWeekday(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		if tc.ok {
			assert.Equal(t, tc.want, got, "input %q", tc.in)
		}
	}
}

func TestCoalesceStr(t *testing.T) {
	assert.Equal(t, "a", CoalesceStr("", "a", "b"))
	assert.Equal(t, "", CoalesceStr("", ""))
	assert.Equal(t, "", CoalesceStr())
}

func TestIntFromPtrWithDefault(t *testing.T) {
	three := 3
	assert.Equal(t, 3, IntFromPtrWithDefault(1, nil, &three))
	assert.Equal(t, 1, IntFromPtrWithDefault(1, nil))
}
