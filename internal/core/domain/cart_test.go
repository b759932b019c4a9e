package domain

import "testing"

func TestCart_AddItem_MergesByProduct(t *testing.T) {
	cart := &Cart{UserID: "buyer-1"}
	cart.AddItem("product-1", 2)
	cart.AddItem("product-2", 1)
	cart.AddItem("product-1", 3)

	if len(cart.Items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(cart.Items))
	}
	if cart.Items[0].ProductID != "product-1" || cart.Items[0].Quantity != 5 {
		t.Fatalf("expected merged line quantity 5, got %+v", cart.Items[0])
	}
}

func TestCart_RemoveItem(t *testing.T) {
	cart := &Cart{UserID: "buyer-1"}
	cart.AddItem("product-1", 2)
	cart.AddItem("product-2", 1)

	cart.RemoveItem("product-1")
	if len(cart.Items) != 1 || cart.Items[0].ProductID != "product-2" {
		t.Fatalf("unexpected items after removal: %+v", cart.Items)
	}

	// Absent line removal is a no-op.
	cart.RemoveItem("product-9")
	if len(cart.Items) != 1 {
		t.Fatalf("no-op removal changed the cart: %+v", cart.Items)
	}

	cart.RemoveItem("product-2")
	if !cart.IsEmpty() {
		t.Fatalf("expected empty cart")
	}
}
