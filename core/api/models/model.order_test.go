package models

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{OrderStatusPending, OrderStatusPaid, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPaid, OrderStatusCompleted, true},
		{OrderStatusPaid, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusCompleted, false}, // Không được nhảy cóc
		{OrderStatusCompleted, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusCompleted, OrderStatusPaid, false},
	}

	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, muốn %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestIsValidOrderStatus(t *testing.T) {
	for _, status := range []string{OrderStatusPending, OrderStatusPaid, OrderStatusCompleted, OrderStatusCancelled} {
		if !IsValidOrderStatus(status) {
			t.Errorf("IsValidOrderStatus(%s) = false, muốn true", status)
		}
	}
	if IsValidOrderStatus("shipping") {
		t.Error("IsValidOrderStatus(shipping) = true, trạng thái này không thuộc state machine")
	}
}
