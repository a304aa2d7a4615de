package node

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/propkit/propkit/prop"
)

func TestJSONRoundTripPreservesEquality(t *testing.T) {
	root := formNode(t)
	root.Child("step1").Child("firstName").SetValue("Ada", SetOptions{Silent: true})
	root.Child("step1").Child("age").SetValue(36, SetOptions{Silent: true})

	data, err := root.ToJSON()
	if err != nil {
		t.Fatal(err)
	}
	back, err := FromJSON(data)
	if err != nil {
		t.Fatal(err)
	}
	if !root.Equals(back) {
		t.Errorf("round trip broke equality")
	}
	if back.Registry() != nil {
		t.Errorf("deserialized tree grew a registry")
	}

	// functions reattach and the computed value evaluates
	back.SetRegistry(root.Registry())
	back.Child("step1").Child("lastName").SetValue("Lovelace", SetOptions{Silent: true})
	v, err := back.ValueAt("step1.fullName")
	if err != nil {
		t.Fatal(err)
	}
	if v != "Ada Lovelace" {
		t.Errorf("fullName after round trip = %v", v)
	}
}

func TestSnapshot(t *testing.T) {
	root := formNode(t)
	step1 := root.Child("step1")
	step1.Child("firstName").SetValue("Ada", SetOptions{Silent: true})
	step1.Child("lastName").SetValue("Lovelace", SetOptions{Silent: true})
	step1.Child("age").SetValue(36, SetOptions{Silent: true})

	snap, err := root.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"step1.firstName": "Ada",
		"step1.lastName":  "Lovelace",
		"step1.age":       36,
		"step1.fullName":  "Ada Lovelace",
		"step2.email":     "", // default fallback
	}
	if diff := cmp.Diff(want, snap); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestSnapshotNilEvaluationNotDefaulted(t *testing.T) {
	root := formNode(t)
	email := root.Child("step2").Child("email")
	// if with no else evaluates to nil; the default must not mask that
	email.SetValue(prop.Call("if", prop.Lit(false), prop.Lit("x")), SetOptions{Silent: true})

	snap, err := root.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	v, ok := snap["step2.email"]
	if !ok {
		t.Fatalf("leaf with a stored value skipped")
	}
	if v != nil {
		t.Errorf("nil evaluation replaced by default: %v", v)
	}
}

func TestSnapshotSurfacesEvalError(t *testing.T) {
	root := formNode(t)
	// fullName evaluates during the walk; losing its operator must surface
	root.Registry().Unregister("concat")
	if _, err := root.Snapshot(); err == nil {
		t.Errorf("eval failure swallowed")
	}
}

func TestCloneIndependence(t *testing.T) {
	root := formNode(t)
	root.Child("step1").Child("firstName").SetValue("Ada", SetOptions{Silent: true})

	dup := root.Clone()
	if !root.Equals(dup) {
		t.Fatalf("clone not equal")
	}
	if dup.Registry() != root.Registry() {
		t.Errorf("registry not shared")
	}

	calls := 0
	root.Subscribe(func([]string) { calls++ }, nil)
	dup.Child("step1").Child("firstName").SetValue("Grace")
	if calls != 0 {
		t.Errorf("clone mutation leaked into original's subscriptions")
	}
	if root.Equals(dup) {
		t.Errorf("trees still share structure")
	}
}

func TestEqualsNil(t *testing.T) {
	root := formNode(t)
	if root.Equals(nil) {
		t.Errorf("equal to nil")
	}
}

func TestDiffAndApplyPatch(t *testing.T) {
	root := formNode(t)
	other := root.Clone()
	other.Child("step1").Child("firstName").SetValue("Ada", SetOptions{Silent: true})

	empty, err := root.Diff(root.Clone())
	if err != nil {
		t.Fatal(err)
	}
	if string(empty) != "{}" {
		t.Errorf("identical diff = %s", empty)
	}

	patch, err := root.Diff(other)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(patch), "Ada") {
		t.Errorf("patch missing change: %s", patch)
	}

	patched, err := root.ApplyPatch(patch)
	if err != nil {
		t.Fatal(err)
	}
	if !patched.Equals(other) {
		t.Errorf("patch application diverged")
	}
	if patched.Registry() != root.Registry() {
		t.Errorf("registry not carried over")
	}
}
