package services

import (
	"errors"
	"testing"

	"careertalk/internal/apperr"
	"careertalk/internal/db"
	"careertalk/internal/models"
)

func TestSendCoupon(t *testing.T) {
	setupTestDB(t)
	sender := createUser(t, "s@test.com")
	mentor := createUser(t, "m@test.com")
	db.DB.Model(sender).UpdateColumn("coupon_balance", 5)
	db.DB.Model(mentor).UpdateColumn("coupon_balance", 0)

	log, err := SendCoupon(sender.ID, SendCouponInput{
		ToUserID: mentor.ID,
		Amount:   2,
		Message:  "답변 감사합니다!",
	})
	if err != nil {
		t.Fatalf("SendCoupon: %v", err)
	}
	if log.Amount != 2 {
		t.Errorf("log amount: got %d, want 2", log.Amount)
	}

	sBal, _ := CouponBalance(sender.ID)
	mBal, _ := CouponBalance(mentor.ID)
	if sBal != 3 || mBal != 2 {
		t.Errorf("balances: sender=%d receiver=%d, want 3/2", sBal, mBal)
	}
}

func TestSendCouponInsufficientBalance(t *testing.T) {
	setupTestDB(t)
	sender := createUser(t, "s@test.com")
	mentor := createUser(t, "m@test.com")
	db.DB.Model(sender).UpdateColumn("coupon_balance", 1)

	_, err := SendCoupon(sender.ID, SendCouponInput{ToUserID: mentor.ID, Amount: 5})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("got %v, want ErrValidation", err)
	}

	// Nothing committed: balance untouched, no ledger row.
	bal, _ := CouponBalance(sender.ID)
	if bal != 1 {
		t.Errorf("balance changed on failed send: %d", bal)
	}
	var rows int64
	db.DB.Model(&models.CouponLog{}).Count(&rows)
	if rows != 0 {
		t.Errorf("ledger row written on failed send")
	}
}

func TestSendCouponValidation(t *testing.T) {
	setupTestDB(t)
	sender := createUser(t, "s@test.com")
	mentor := createUser(t, "m@test.com")

	if _, err := SendCoupon(sender.ID, SendCouponInput{ToUserID: mentor.ID, Amount: 0}); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("zero amount: got %v, want ErrValidation", err)
	}
	if _, err := SendCoupon(sender.ID, SendCouponInput{ToUserID: sender.ID, Amount: 1}); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("self send: got %v, want ErrValidation", err)
	}
	if _, err := SendCoupon(sender.ID, SendCouponInput{ToUserID: 99999, Amount: 1}); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("missing receiver: got %v, want ErrNotFound", err)
	}
}

func TestCouponHistory(t *testing.T) {
	setupTestDB(t)
	sender := createUser(t, "s@test.com")
	mentor := createUser(t, "m@test.com")

	if _, err := SendCoupon(sender.ID, SendCouponInput{ToUserID: mentor.ID, Amount: 1}); err != nil {
		t.Fatalf("SendCoupon: %v", err)
	}

	for _, id := range []uint{sender.ID, mentor.ID} {
		logs, err := CouponHistory(id)
		if err != nil {
			t.Fatalf("CouponHistory(%d): %v", id, err)
		}
		if len(logs) != 1 {
			t.Errorf("history for %d: got %d entries, want 1", id, len(logs))
		}
	}
}

func TestSendCouponNeverOverdraws(t *testing.T) {
	setupTestDB(t)
	sender := createUser(t, "s@test.com")
	mentor := createUser(t, "m@test.com")
	db.DB.Model(sender).UpdateColumn("coupon_balance", 2)

	if _, err := SendCoupon(sender.ID, SendCouponInput{ToUserID: mentor.ID, Amount: 2}); err != nil {
		t.Fatalf("drain: %v", err)
	}

	// The decrement is guarded in the UPDATE itself, so a second send
	// against a drained balance fails and rolls back its ledger row
	// instead of going negative.
	_, err := SendCoupon(sender.ID, SendCouponInput{ToUserID: mentor.ID, Amount: 2})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("overdraw: got %v, want ErrValidation", err)
	}

	bal, _ := CouponBalance(sender.ID)
	if bal != 0 {
		t.Errorf("balance after overdraw attempt: %d, want 0", bal)
	}
	var rows int64
	db.DB.Model(&models.CouponLog{}).Count(&rows)
	if rows != 1 {
		t.Errorf("ledger rows: %d, want 1", rows)
	}
}
