package setting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		line   string
		want   Setting
		wantOK bool
	}{
		"simple":                {line: "A=1", want: Setting{Name: "A", Value: "1"}, wantOK: true},
		"with newline":          {line: "name=value\n", want: Setting{Name: "name", Value: "value"}, wantOK: true},
		"with crlf":             {line: "name=value\r\n", want: Setting{Name: "name", Value: "value"}, wantOK: true},
		"empty value":           {line: "A=", want: Setting{Name: "A", Value: ""}, wantOK: true},
		"value keeps equals":    {line: "url=a=b=c", want: Setting{Name: "url", Value: "a=b=c"}, wantOK: true},
		"value keeps spaces":    {line: "greeting= hello world ", want: Setting{Name: "greeting", Value: " hello world "}, wantOK: true},
		"underscore and digits": {line: "max_retries_2=5", want: Setting{Name: "max_retries_2", Value: "5"}, wantOK: true},
		"no equals":             {line: "A"},
		"bare equals":           {line: "=1"},
		"space before equals":   {line: "A =1"},
		"leading space":         {line: " A=1"},
		"dash in name":          {line: "a-b=1"},
		"empty line":            {line: ""},
		"newline only":          {line: "\n"},
		"embedded newline":      {line: "A=1\nB=2"},
		"non ascii name":        {line: "café=1"},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, ok := Parse(tt.line)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, s := range []Setting{
		{Name: "A", Value: "1"},
		{Name: "x_9", Value: ""},
		{Name: "path", Value: "/usr/bin:/bin"},
		{Name: "expr", Value: "a == b"},
	} {
		got, ok := Parse(s.String())
		assert.True(t, ok, s.String())
		assert.Equal(t, s, got)
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		line      string
		name      string
		wantMatch Match
		wantValue string
	}{
		"found":           {line: "A=1\n", name: "A", wantMatch: Found, wantValue: "1"},
		"other":           {line: "B=2\n", name: "A", wantMatch: Other, wantValue: "2"},
		"prefix is other": {line: "AB=2\n", name: "A", wantMatch: Other, wantValue: "2"},
		"invalid":         {line: "garbage\n", name: "A", wantMatch: Invalid},
		"pattern name":    {line: "AB=2\n", name: "A.", wantMatch: Other, wantValue: "2"},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, m := Lookup(tt.line, tt.name)
			assert.Equal(t, tt.wantMatch, m, m.String())
			assert.Equal(t, tt.wantValue, got.Value)
		})
	}
}
