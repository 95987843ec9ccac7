package gwy

import (
	"slices"
	"testing"
)

func TestSplitPath(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"", []string{}},
		{"/", []string{}},
		{"/0", []string{"0"}},
		{"/0/data", []string{"0", "data"}},
		{"0//data/", []string{"0", "data"}},
		{"/0/data/title", []string{"0", "data", "title"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := SplitPath(tt.path)
			if !slices.Equal(got, tt.want) {
				t.Errorf("SplitPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestJoinPath(t *testing.T) {
	tests := []struct {
		elem []string
		want string
	}{
		{nil, "/"},
		{[]string{"0"}, "/0"},
		{[]string{"/0", "data"}, "/0/data"},
		{[]string{"0/", "/data/title"}, "/0/data/title"},
		{[]string{"", "x"}, "/x"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := JoinPath(tt.elem...); got != tt.want {
				t.Errorf("JoinPath(%q) = %q, want %q", tt.elem, got, tt.want)
			}
		})
	}
}

func TestCleanPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"", "/"},
		{"/", "/"},
		{"0/data", "/0/data"},
		{"/0/data/", "/0/data"},
		{"//0///data", "/0/data"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := CleanPath(tt.path); got != tt.want {
				t.Errorf("CleanPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestUnflattenKeepsValuePrefixes(t *testing.T) {
	c := NewContainer()
	for _, key := range []string{"/a", "/a/b", "/x/y/z", "/x/w"} {
		if err := c.Set(key, NewString(key)); err != nil {
			t.Fatalf("Set(%q) failed: %v", key, err)
		}
	}

	nested, err := c.Unflatten()
	if err != nil {
		t.Fatalf("Unflatten failed: %v", err)
	}
	if got, want := nested.Keys(), []string{"/a", "/a/b", "x"}; !slices.Equal(got, want) {
		t.Errorf("top-level keys = %q, want %q", got, want)
	}
	for _, key := range c.Keys() {
		v, ok := nested.Lookup(key)
		if !ok {
			t.Errorf("Lookup(%q) found nothing", key)
			continue
		}
		if s, _ := v.Text(); s != key {
			t.Errorf("Lookup(%q) = %q", key, s)
		}
	}

	flat, err := nested.Flatten()
	if err != nil {
		t.Fatalf("Flatten failed: %v", err)
	}
	if !flat.ToNode().Equal(c.ToNode()) {
		t.Errorf("Flatten(Unflatten(c)) = %v, want %v", flat.ToNode(), c.ToNode())
	}
}
