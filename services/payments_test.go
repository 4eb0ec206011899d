package services

import (
	"testing"
	"time"

	"food-order-api/models"
)

func TestCreatePaymentStartsPromotion(t *testing.T) {
	db := openTestDB(t)
	owner := seedUser(t, db, "o@a.com", models.RoleOwner)
	restaurant := seedRestaurant(t, db, owner, "Sushi Bar")

	payment, err := CreatePayment(db, owner, "tx-1", restaurant.ID)
	if err != nil {
		t.Fatalf("create payment: %v", err)
	}
	if payment.RestaurantID != restaurant.ID || payment.UserID != owner.ID {
		t.Error("payment not linked to owner and restaurant")
	}

	var reloaded models.Restaurant
	if err := db.First(&reloaded, restaurant.ID).Error; err != nil {
		t.Fatalf("reload restaurant: %v", err)
	}
	if !reloaded.IsPromoted {
		t.Error("restaurant not promoted after payment")
	}
	if reloaded.PromotedUntil == nil {
		t.Fatal("promotion window not set")
	}
	want := time.Now().AddDate(0, 0, PromotionDays)
	if diff := reloaded.PromotedUntil.Sub(want); diff < -time.Minute || diff > time.Minute {
		t.Errorf("promotion window ends %v, want about %v", reloaded.PromotedUntil, want)
	}
}

func TestCreatePaymentChecks(t *testing.T) {
	db := openTestDB(t)
	owner := seedUser(t, db, "o@a.com", models.RoleOwner)
	stranger := seedUser(t, db, "o2@a.com", models.RoleOwner)
	restaurant := seedRestaurant(t, db, owner, "Sushi Bar")

	if _, err := CreatePayment(db, owner, "tx-1", 999); err == nil {
		t.Error("payment for missing restaurant accepted")
	}
	if _, err := CreatePayment(db, stranger, "tx-2", restaurant.ID); err == nil {
		t.Error("payment for someone else's restaurant accepted")
	}
	if n := countRows(t, db, &models.Payment{}); n != 0 {
		t.Errorf("payment rows = %d, want 0", n)
	}
}

func TestExpirePromotions(t *testing.T) {
	db := openTestDB(t)
	owner := seedUser(t, db, "o@a.com", models.RoleOwner)

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)
	expired := models.Restaurant{Name: "Old", OwnerID: owner.ID, IsPromoted: true, PromotedUntil: &past}
	active := models.Restaurant{Name: "New", OwnerID: owner.ID, IsPromoted: true, PromotedUntil: &future}
	if err := db.Create(&expired).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&active).Error; err != nil {
		t.Fatal(err)
	}

	n, err := ExpirePromotions(db, time.Now())
	if err != nil {
		t.Fatalf("expire promotions: %v", err)
	}
	if n != 1 {
		t.Errorf("demoted %d restaurants, want 1", n)
	}

	var r1, r2 models.Restaurant
	db.First(&r1, expired.ID)
	db.First(&r2, active.ID)
	if r1.IsPromoted {
		t.Error("expired promotion still active")
	}
	if !r2.IsPromoted {
		t.Error("active promotion was cleared")
	}
}

func TestGetPayments(t *testing.T) {
	db := openTestDB(t)
	owner := seedUser(t, db, "o@a.com", models.RoleOwner)
	other := seedUser(t, db, "o2@a.com", models.RoleOwner)
	restaurant := seedRestaurant(t, db, owner, "Sushi Bar")

	if _, err := CreatePayment(db, owner, "tx-1", restaurant.ID); err != nil {
		t.Fatalf("create payment: %v", err)
	}

	mine, err := GetPayments(db, owner)
	if err != nil {
		t.Fatalf("get payments: %v", err)
	}
	if len(mine) != 1 {
		t.Errorf("owner sees %d payments, want 1", len(mine))
	}
	theirs, _ := GetPayments(db, other)
	if len(theirs) != 0 {
		t.Errorf("other owner sees %d payments, want 0", len(theirs))
	}
}
