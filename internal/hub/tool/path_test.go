package tool

import "testing"

func TestSanitizePathRejectsTraversal(t *testing.T) {
	bad := []string{
		"../etc/passwd",
		"assets/../../secret",
		"a/..",
		"..",
		"%2e%2e/secret",
		"a/%2E%2E/b",
		"",
	}
	for _, p := range bad {
		if _, err := SanitizePath(p); err == nil {
			t.Errorf("SanitizePath(%q) should fail", p)
		}
	}
}

func TestSanitizePathAcceptsSafe(t *testing.T) {
	cases := []struct{ in, want string }{
		{"assets/logo.png", "assets/logo.png"},
		{"/assets/logo.png", "assets/logo.png"},
		{"//deep/dir/file.txt", "deep/dir/file.txt"},
		{"content/calendar.json", "content/calendar.json"},
		{"a.b.c", "a.b.c"},
	}
	for _, c := range cases {
		got, err := SanitizePath(c.in)
		if err != nil {
			t.Errorf("SanitizePath(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("SanitizePath(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
