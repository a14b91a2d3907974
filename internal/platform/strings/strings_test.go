package strings

import "testing"

func TestIfEmpty(t *testing.T) {
	def := []string{"data"}
	if got := IfEmpty(nil, def); len(got) != 1 || got[0] != "data" {
		t.Fatalf("IfEmpty(nil) = %v", got)
	}
	in := []string{"raw"}
	if got := IfEmpty(in, def); len(got) != 1 || got[0] != "raw" {
		t.Fatalf("IfEmpty(in) = %v", got)
	}
}

func TestMustString(t *testing.T) {
	if got := MustString("bins", "name"); got != "bins" {
		t.Fatalf("MustString = %q", got)
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("MustString should panic on blank input")
		}
	}()
	MustString("   ", "name")
}

func TestMustPrefix(t *testing.T) {
	cases := map[string]string{
		"/bins":  "/bins",
		"bins":   "/bins",
		" bins/": "/bins",
		"/a/b":   "/a/b",
	}
	for in, want := range cases {
		if got := MustPrefix(in); got != want {
			t.Fatalf("MustPrefix(%q) = %q, want %q", in, got, want)
		}
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("MustPrefix should panic on empty input")
		}
	}()
	MustPrefix("  ")
}
