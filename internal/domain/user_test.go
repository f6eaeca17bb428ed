package domain

import (
	"reflect"
	"testing"
)

func TestCartDataIncrementCountsCalls(t *testing.T) {
	var cart CartData
	for i := 0; i < 3; i++ {
		cart = cart.Increment("p1", "M")
	}
	if got := cart.Quantity("p1", "M"); got != 3 {
		t.Fatalf("expected quantity 3, got %d", got)
	}
}

func TestCartDataIncrementCreatesNestedEntries(t *testing.T) {
	cart := CartData{}
	cart = cart.Increment("p1", "M")
	cart = cart.Increment("p1", "L")
	cart = cart.Increment("p2", "S")
	expected := CartData{
		"p1": {"M": 1, "L": 1},
		"p2": {"S": 1},
	}
	if !reflect.DeepEqual(cart, expected) {
		t.Fatalf("unexpected cart %+v", cart)
	}
}

func TestCartDataSetOverwrites(t *testing.T) {
	cart := CartData{"p1": {"M": 2}}
	cart = cart.Set("p1", "M", 5)
	if got := cart.Quantity("p1", "M"); got != 5 {
		t.Fatalf("expected quantity 5, got %d", got)
	}
}

func TestCartDataSetAutoCreates(t *testing.T) {
	var cart CartData
	cart = cart.Set("p1", "XL", 4)
	if got := cart.Quantity("p1", "XL"); got != 4 {
		t.Fatalf("expected quantity 4, got %d", got)
	}
}

func TestCartDataSetZeroRemovesEntry(t *testing.T) {
	cart := CartData{"p1": {"M": 2, "L": 1}}
	cart = cart.Set("p1", "M", 0)
	if _, ok := cart["p1"]["M"]; ok {
		t.Fatalf("expected size M removed, got %+v", cart)
	}
	cart = cart.Set("p1", "L", 0)
	if _, ok := cart["p1"]; ok {
		t.Fatalf("expected item p1 pruned, got %+v", cart)
	}
}

func TestCartDataSetZeroOnAbsentEntryIsNoop(t *testing.T) {
	cart := CartData{"p1": {"M": 2}}
	cart = cart.Set("p2", "S", 0)
	expected := CartData{"p1": {"M": 2}}
	if !reflect.DeepEqual(cart, expected) {
		t.Fatalf("unexpected cart %+v", cart)
	}
}

func TestKnownStatus(t *testing.T) {
	for _, s := range []string{StatusOrderPlaced, StatusPacking, StatusShipped, StatusOutForDelivery, StatusDelivered} {
		if !KnownStatus(s) {
			t.Fatalf("expected %q to be known", s)
		}
	}
	if KnownStatus("Lost in transit") {
		t.Fatalf("unexpected status accepted")
	}
}
