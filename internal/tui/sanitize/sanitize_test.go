package sanitize

import "testing"

func TestDisplayName(t *testing.T) {
	cases := []struct{ in, want string }{
		{"IMG-0001.jpg", "IMG-0001.jpg"},
		{"\x1b[31mred\x1b[0m.jpg", "red.jpg"},
		{"\x1b]0;title\x07clip.mp4", "clip.mp4"},
		{"\x1b[2Jwipe.jpg", "wipe.jpg"},
		{"two\nlines.jpg", "two�lines.jpg"},
		{"tab\there.jpg", "tab�here.jpg"},
	}
	for _, c := range cases {
		if got := DisplayName(c.in); got != c.want {
			t.Errorf("DisplayName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
