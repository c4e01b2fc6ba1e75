package renderer

import (
	"reflect"
	"testing"
)

func TestUnwindRunsInReverse(t *testing.T) {
	var order []int
	var u Unwind
	for i := 1; i <= 3; i++ {
		i := i
		u.Add(func() { order = append(order, i) })
	}

	u.Unwind()
	u.Unwind()

	if want := []int{3, 2, 1}; !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestUnwindDiscard(t *testing.T) {
	ran := false
	var u Unwind
	u.Add(func() { ran = true })

	u.Discard()
	u.Unwind()

	if ran {
		t.Error("discarded cleanup ran")
	}
}
