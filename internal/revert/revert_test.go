package revert_test

import (
	"testing"

	"github.com/magurofly/magjudge/internal/revert"
)

func TestFailRunsHooksInReverseOrder(t *testing.T) {
	var order []int

	r := revert.New()
	r.Add(func() { order = append(order, 1) })
	r.Add(func() { order = append(order, 2) })
	r.Add(func() { order = append(order, 3) })
	r.Fail()

	want := []int{3, 2, 1}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}

	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v, want %v", order, want)
		}
	}
}

func TestSuccessDisarmsFail(t *testing.T) {
	ran := false

	r := revert.New()
	r.Add(func() { ran = true })
	r.Success()
	r.Fail()

	if ran {
		t.Fatal("hook ran after Success")
	}
}
