package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedent(t *testing.T) {
	tests := []struct {
		name string
		give string
		want string
	}{
		{name: "empty", give: "", want: ""},
		{name: "no indent", give: "hello\nworld", want: "hello\nworld"},
		{
			name: "common margin removed",
			give: "\n\t\tList open pull requests.\n\t\tFilters by state.\n\t",
			want: "List open pull requests.\nFilters by state.",
		},
		{
			name: "uneven indent keeps relative structure",
			give: "\n\t\tUsage:\n\t\t\tbb pr list\n\t",
			want: "Usage:\n\tbb pr list",
		},
		{
			name: "blank lines do not set the margin",
			give: "\t\tfirst\n\n\t\tsecond",
			want: "first\n\nsecond",
		},
		{
			name: "trailing whitespace trimmed",
			give: "  one  \n  two\t",
			want: "one\ntwo",
		},
		{
			name: "surrounding blank lines trimmed",
			give: "\n\n  body\n\n",
			want: "body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Dedent(tt.give))
		})
	}
}
