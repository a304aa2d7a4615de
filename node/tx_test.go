package node

import (
	"errors"
	"testing"
)

var errBoom = errors.New("boom")

func TestTransactionRollback(t *testing.T) {
	root := formNode(t)
	step1 := root.Child("step1")
	first := step1.Child("firstName")
	last := step1.Child("lastName")
	age := step1.Child("age")

	first.SetValue("Ada", SetOptions{Silent: true})

	err := root.Transaction(func() error {
		first.SetValue("Grace")
		last.SetValue("Hopper")
		age.SetValue(85)
		return errBoom
	})
	if err != errBoom {
		t.Fatalf("err = %v, want original identity", err)
	}
	if first.RawValue() != "Ada" || last.RawValue() != nil || age.RawValue() != nil {
		t.Errorf("rollback incomplete: %v %v %v",
			first.RawValue(), last.RawValue(), age.RawValue())
	}
}

func TestTransactionCommit(t *testing.T) {
	root := formNode(t)
	first := root.Child("step1").Child("firstName")

	err := root.Transaction(func() error {
		return first.SetValue("Ada")
	})
	if err != nil {
		t.Fatal(err)
	}
	if first.RawValue() != "Ada" {
		t.Errorf("committed value lost")
	}
}

func TestTransactionFirstTouchWins(t *testing.T) {
	root := formNode(t)
	first := root.Child("step1").Child("firstName")
	first.SetValue("one", SetOptions{Silent: true})

	root.Transaction(func() error {
		first.SetValue("two")
		first.SetValue("three")
		return errBoom
	})
	if first.RawValue() != "one" {
		t.Errorf("restored %v, want pre-transaction value", first.RawValue())
	}
}

func TestTransactionRollsBackOnPanic(t *testing.T) {
	root := formNode(t)
	first := root.Child("step1").Child("firstName")

	func() {
		defer func() {
			if recover() == nil {
				t.Errorf("panic swallowed")
			}
		}()
		root.Transaction(func() error {
			first.SetValue("Ada")
			panic("boom")
		})
	}()
	if first.RawValue() != nil {
		t.Errorf("panic path did not roll back")
	}
}

func TestNestedTransactions(t *testing.T) {
	root := formNode(t)
	step1 := root.Child("step1")
	first := step1.Child("firstName")
	last := step1.Child("lastName")

	// inner failure rolls back only the inner frame
	err := root.Transaction(func() error {
		first.SetValue("Ada")
		inner := root.Transaction(func() error {
			last.SetValue("Hopper")
			return errBoom
		})
		if inner != errBoom {
			t.Fatalf("inner err = %v", inner)
		}
		if last.RawValue() != nil {
			t.Errorf("inner rollback missed")
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if first.RawValue() != "Ada" {
		t.Errorf("outer commit lost")
	}

	// an inner commit still rolls back with the enclosing failure
	root.Transaction(func() error {
		root.Transaction(func() error {
			return first.SetValue("Grace")
		})
		return errBoom
	})
	if first.RawValue() != "Ada" {
		t.Errorf("merged inner touch not restored, got %v", first.RawValue())
	}
}

func TestTransactionNotificationsStillFire(t *testing.T) {
	root := formNode(t)
	first := root.Child("step1").Child("firstName")

	calls := 0
	root.Subscribe(func([]string) { calls++ }, nil)

	root.Transaction(func() error {
		first.SetValue("Ada")
		return errBoom
	})
	// mutations announce as they happen; rollback itself is silent
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
