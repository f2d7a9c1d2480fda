package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"skillur/internal/domain"
)

func TestCreditMintsCoinEverySecondReferral(t *testing.T) {
	db := newTestDB(t)
	repo := NewReferralRepository(db)
	profiles := NewProfileRepository(db)
	ctx := context.Background()

	referrer := seedProfile(t, db, "4000001", 0)

	wantCoins := []int{0, 1, 1, 2}
	for i, want := range wantCoins {
		referred := seedProfile(t, db, fmt.Sprintf("500000%d", i+1), 0)
		referral, err := repo.Credit(ctx, referrer.SCSNumber, referred.ID)
		if err != nil {
			t.Fatalf("Credit #%d: %v", i+1, err)
		}
		if (i+1)%2 == 0 && referral.CoinsAwarded != 1 {
			t.Errorf("referral #%d awarded %d coins, want 1", i+1, referral.CoinsAwarded)
		}
		if (i+1)%2 == 1 && referral.CoinsAwarded != 0 {
			t.Errorf("referral #%d awarded %d coins, want 0", i+1, referral.CoinsAwarded)
		}

		got, err := profiles.GetByID(ctx, referrer.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.ReferralCount != i+1 {
			t.Errorf("after #%d: count = %d, want %d", i+1, got.ReferralCount, i+1)
		}
		if got.Coins != want {
			t.Errorf("after #%d: coins = %d, want %d", i+1, got.Coins, want)
		}
	}
}

func TestCreditSetsBackReference(t *testing.T) {
	db := newTestDB(t)
	repo := NewReferralRepository(db)
	ctx := context.Background()

	referrer := seedProfile(t, db, "4000002", 0)
	referred := seedProfile(t, db, "4000003", 0)

	if _, err := repo.Credit(ctx, referrer.SCSNumber, referred.ID); err != nil {
		t.Fatalf("Credit: %v", err)
	}

	var got domain.Profile
	if err := db.First(&got, "id = ?", referred.ID).Error; err != nil {
		t.Fatalf("referred profile: %v", err)
	}
	if got.ReferredBy == nil || *got.ReferredBy != referrer.ID {
		t.Errorf("referred_by = %v, want %s", got.ReferredBy, referrer.ID)
	}

	list, err := repo.ListByReferrer(ctx, referrer.ID)
	if err != nil {
		t.Fatalf("ListByReferrer: %v", err)
	}
	if len(list) != 1 || list[0].ReferredID != referred.ID {
		t.Errorf("referrals = %+v", list)
	}
}

func TestCreditUnknownReferrer(t *testing.T) {
	db := newTestDB(t)
	repo := NewReferralRepository(db)

	referred := seedProfile(t, db, "4000004", 0)
	if _, err := repo.Credit(context.Background(), "9999999", referred.ID); !errors.Is(err, domain.ErrReferrerNotFound) {
		t.Fatalf("err = %v, want ErrReferrerNotFound", err)
	}
}

func TestCreditRejectsSelfReferral(t *testing.T) {
	db := newTestDB(t)
	repo := NewReferralRepository(db)
	ctx := context.Background()

	profile := seedProfile(t, db, "4000005", 0)
	if _, err := repo.Credit(ctx, profile.SCSNumber, profile.ID); !errors.Is(err, domain.ErrReferrerNotFound) {
		t.Fatalf("err = %v, want ErrReferrerNotFound", err)
	}

	var got domain.Profile
	if err := db.First(&got, "id = ?", profile.ID).Error; err != nil {
		t.Fatalf("profile: %v", err)
	}
	if got.ReferralCount != 0 || got.Coins != 0 {
		t.Errorf("self referral mutated profile: count=%d coins=%d", got.ReferralCount, got.Coins)
	}
}
