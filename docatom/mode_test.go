package docatom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jcorbin/docsplit/docatom"
)

func Test_DetectMode(t *testing.T) {
	for _, tc := range []struct {
		name string
		text string
		want docatom.Mode
	}{
		{
			name: "plain prose",
			text: "Just a couple\nof plain lines\nwith no structure at all.\n",
			want: docatom.Plain,
		},
		{
			name: "heading and list",
			text: "# Title\n\n- one\n- two\n",
			want: docatom.Markdown,
		},
		{
			name: "heading and fence",
			text: "# Title\n\n```\ncode\n```\n",
			want: docatom.Markdown,
		},
		{
			name: "only a single heading",
			text: "# Title\n\nplain paragraph after it, no other signal.\n",
			want: docatom.Plain,
		},
		{
			name: "link and blockquote",
			text: "See [here](https://example.com) for more.\n\n> quoted\n",
			want: docatom.Markdown,
		},
		{
			name: "empty",
			text: "",
			want: docatom.Plain,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, docatom.DetectMode(tc.text))
		})
	}
}
