package checksum

import "testing"

func TestSum_Stable(t *testing.T) {
	a := Sum([]byte(`{"tools":[]}`))
	b := Sum([]byte(`{"tools":[]}`))
	if a != b {
		t.Fatalf("sum not stable: %q vs %q", a, b)
	}
	if len(a) != 64 {
		t.Errorf("len = %d, want 64", len(a))
	}
	if Sum([]byte("x")) == a {
		t.Error("different input produced same sum")
	}
}

func TestMatchETag(t *testing.T) {
	sum := Sum([]byte("doc"))
	cases := []struct {
		header string
		want   bool
	}{
		{"", false},
		{"*", true},
		{ETag(sum), true},
		{"W/" + ETag(sum), true},
		{`"other", ` + ETag(sum), true},
		{`"other"`, false},
	}
	for _, c := range cases {
		if got := MatchETag(c.header, sum); got != c.want {
			t.Errorf("MatchETag(%q) = %v, want %v", c.header, got, c.want)
		}
	}
	if MatchETag("*", "") {
		t.Error("empty sum should never match")
	}
}
