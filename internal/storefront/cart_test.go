package storefront

import (
	"testing"

	"github.com/decalcomanie/colorstore/internal/domain"
)

func item(id, price string) domain.CartItem {
	return domain.CartItem{ID: id, Name: "Color " + id, Price: price}
}

func TestCartAddIsNoOpForDuplicateID(t *testing.T) {
	c := NewCart()
	if !c.Add(item("FF0000", "10.00")) {
		t.Fatal("first add should change the cart")
	}
	if c.Add(item("FF0000", "99.00")) {
		t.Fatal("duplicate add should be a no-op")
	}
	if c.Len() != 1 {
		t.Fatalf("Len = %d, want 1", c.Len())
	}
	if got := c.Items()[0].Price; got != "10.00" {
		t.Fatalf("duplicate add replaced the item, price = %s", got)
	}
}

func TestCartRemoveAndOrder(t *testing.T) {
	c := NewCart()
	c.Add(item("000001", "1.00"))
	c.Add(item("000002", "2.00"))
	c.Add(item("000003", "3.00"))

	if !c.Remove("000002") {
		t.Fatal("Remove of a present id returned false")
	}
	if c.Remove("000002") {
		t.Fatal("Remove of a missing id returned true")
	}

	items := c.Items()
	if len(items) != 2 || items[0].ID != "000001" || items[1].ID != "000003" {
		t.Fatalf("items after remove = %+v", items)
	}
	if c.Contains("000002") || !c.Contains("000003") {
		t.Fatal("Contains disagrees with Items")
	}
}

func TestCartItemsIsACopy(t *testing.T) {
	c := NewCart()
	c.Add(item("ABCDEF", "5.00"))
	items := c.Items()
	items[0].ID = "changed"
	if !c.Contains("ABCDEF") {
		t.Fatal("mutating Items() leaked into the cart")
	}
}

func TestCartTotal(t *testing.T) {
	c := NewCart()
	if got := c.Total(); got != "0.00" {
		t.Fatalf("empty total = %s", got)
	}
	c.Add(item("000001", "10.10"))
	c.Add(item("000002", "0.20"))
	c.Add(item("000003", "not-a-price"))
	if got := c.Total(); got != "10.30" {
		t.Fatalf("Total = %s, want 10.30", got)
	}

	c.Clear()
	if c.Len() != 0 {
		t.Fatalf("Len after Clear = %d", c.Len())
	}
}
