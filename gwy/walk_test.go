package gwy

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func walkTree() *Node {
	leaf := func(kind string) *Node { return NewNode(kind) }

	b := NewNode("B")
	b.Set("deep", NewObject(leaf("D")))

	root := NewNode("Root")
	root.Set("a", NewObject(leaf("A")))
	root.Set("list", NewObjectArray([]*Node{b, leaf("C")}))
	root.Set("n", NewInt32(1))
	return root
}

func TestWalk(t *testing.T) {
	var got []string
	err := Walk(walkTree(), func(path string, n *Node) error {
		got = append(got, path+"="+n.Kind())
		return nil
	})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}

	want := []string{
		"=Root",
		"/a=A",
		"/list[0]=B",
		"/list[0]/deep=D",
		"/list[1]=C",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("visit order (-want +got):\n%s", diff)
	}
}

func TestWalkSkipNode(t *testing.T) {
	var got []string
	err := Walk(walkTree(), func(path string, n *Node) error {
		got = append(got, n.Kind())
		if n.Kind() == "B" {
			return SkipNode
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if diff := cmp.Diff([]string{"Root", "A", "B", "C"}, got); diff != "" {
		t.Errorf("visit order (-want +got):\n%s", diff)
	}

	// Skipping the root ends the walk without error.
	calls := 0
	err = Walk(walkTree(), func(string, *Node) error {
		calls++
		return SkipNode
	})
	if err != nil || calls != 1 {
		t.Errorf("got err=%v calls=%d, want nil and 1", err, calls)
	}
}

func TestWalkStops(t *testing.T) {
	stop := errors.New("stop")
	var got []string
	err := Walk(walkTree(), func(path string, n *Node) error {
		got = append(got, n.Kind())
		if n.Kind() == "B" {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) {
		t.Fatalf("got %v, want stop", err)
	}
	if diff := cmp.Diff([]string{"Root", "A", "B"}, got); diff != "" {
		t.Errorf("visit order (-want +got):\n%s", diff)
	}

	if err := Walk(nil, func(string, *Node) error { return stop }); err != nil {
		t.Errorf("Walk(nil) = %v", err)
	}
}
