package arena

import "testing"

func TestTreeTruncatePreservesSiblingIndices(t *testing.T) {
	tr := NewTree[string]()
	root := tr.Begin("root").Commit()

	var kids []Key
	for _, name := range []string{"a", "b", "c"} {
		k, ok := tr.Begin(name).CommitChild(root)
		if !ok {
			t.Fatalf("commit child failed for %s", name)
		}
		kids = append(kids, k)
	}

	tr.Truncate(root, 1)

	children := tr.Children(root)
	if len(children) != 1 || children[0] != kids[0] {
		t.Fatalf("expected only the first child to survive, got %v", children)
	}

	removed := tr.DrainRemoved()
	if len(removed) != 2 {
		t.Fatalf("expected 2 removed nodes, got %d", len(removed))
	}
}

func TestTreeCommitChildOfMissingParentFails(t *testing.T) {
	tr := NewTree[string]()
	root := tr.Begin("root").Commit()
	tr.Remove(root)

	if _, ok := tr.Begin("orphan").CommitChild(root); ok {
		t.Fatal("expected CommitChild against a removed parent to fail")
	}
}

func TestTreeRemoveMarksWholeSubtree(t *testing.T) {
	tr := NewTree[string]()
	root := tr.Begin("root").Commit()
	child, _ := tr.Begin("child").CommitChild(root)
	_, _ = tr.Begin("grandchild").CommitChild(child)

	tr.Remove(child)

	if len(tr.Children(root)) != 0 {
		t.Fatal("child should be detached from root")
	}
	removed := tr.DrainRemoved()
	if len(removed) != 2 {
		t.Fatalf("expected child + grandchild removed, got %d", len(removed))
	}
}
