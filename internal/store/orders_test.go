package store

import (
	"context"
	"testing"

	"github.com/fotokiosk/kiosk/internal/db"
	"github.com/fotokiosk/kiosk/internal/model"
)

func testOrder() model.Order {
	return model.Order{
		ClientName:  "Ana García",
		ClientEmail: "ana@example.com",
		Items: []model.CartItem{{
			SKU:      "kiosco",
			Photos:   []model.Photo{{ID: "p1", Name: "beach.jpg", FileName: "123_beach.jpg"}},
			Subtotal: 700,
		}},
	}
}

func TestCreateAndGetOrder(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	created, err := CreateOrder(ctx, database, testOrder())
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created order has no ID")
	}
	if created.Status != model.StatusPending {
		t.Errorf("status = %s, want pending", created.Status)
	}
	if created.FilesCopied {
		t.Error("new order has files_copied set")
	}
	if len(created.Items) != 1 || created.Items[0].SKU != "kiosco" {
		t.Errorf("items did not round-trip: %+v", created.Items)
	}
	if created.ClientName != "Ana García" {
		t.Errorf("client name = %q", created.ClientName)
	}

	loaded, err := GetOrder(ctx, database, created.ID)
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if loaded == nil {
		t.Fatal("order not found after create")
	}
	if loaded.Items[0].Photos[0].Name != "beach.jpg" {
		t.Errorf("photo did not round-trip: %+v", loaded.Items[0].Photos)
	}
}

func TestGetOrder_NotFound(t *testing.T) {
	database := db.NewTestDB(t)

	order, err := GetOrder(context.Background(), database, "nope")
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if order != nil {
		t.Errorf("expected nil for missing order, got %+v", order)
	}
}

func TestListOrders_StatusFilter(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	first, err := CreateOrder(ctx, database, testOrder())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := CreateOrder(ctx, database, testOrder()); err != nil {
		t.Fatal(err)
	}

	if err := UpdateOrderStatus(ctx, database, first.ID, model.StatusPaid); err != nil {
		t.Fatalf("UpdateOrderStatus: %v", err)
	}

	paid, err := ListOrders(ctx, database, model.StatusPaid)
	if err != nil {
		t.Fatalf("ListOrders: %v", err)
	}
	if len(paid) != 1 || paid[0].ID != first.ID {
		t.Errorf("paid filter returned %+v", paid)
	}

	all, err := ListOrders(ctx, database, "")
	if err != nil {
		t.Fatalf("ListOrders: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 orders, got %d", len(all))
	}
}

func TestUpdateOrderStatus_NotFound(t *testing.T) {
	database := db.NewTestDB(t)

	if err := UpdateOrderStatus(context.Background(), database, "nope", model.StatusPaid); err == nil {
		t.Error("updating a missing order succeeded")
	}
}

func TestMarkFilesCopied_SingleWinner(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	order, err := CreateOrder(ctx, database, testOrder())
	if err != nil {
		t.Fatal(err)
	}

	won, err := MarkFilesCopied(ctx, database, order.ID)
	if err != nil {
		t.Fatalf("MarkFilesCopied: %v", err)
	}
	if !won {
		t.Fatal("first caller should win the gate")
	}

	// The conditional update makes a second attempt lose, which is the
	// whole duplicate-print protection.
	won, err = MarkFilesCopied(ctx, database, order.ID)
	if err != nil {
		t.Fatalf("MarkFilesCopied: %v", err)
	}
	if won {
		t.Fatal("second caller must not win the gate")
	}

	loaded, err := GetOrder(ctx, database, order.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !loaded.FilesCopied {
		t.Error("files_copied not persisted")
	}
}
