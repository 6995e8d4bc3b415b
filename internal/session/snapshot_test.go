package session

import (
	"reflect"
	"testing"
)

func TestSnapshotAddressedToRecipient(t *testing.T) {
	eng := newFakeEngine(3, 1)
	snap := BuildSnapshot(eng, 1)

	if !reflect.DeepEqual(snap.YourHand, []string{"red 1", "blue 2"}) {
		t.Errorf("your_hand = %v", snap.YourHand)
	}
	if len(snap.Players) != 3 {
		t.Fatalf("players = %v", snap.Players)
	}
	for i, p := range snap.Players {
		if p.ID != i || p.HandCount != 2 {
			t.Errorf("player %d summary = %+v", i, p)
		}
	}
	if snap.CurrentCard != "red 5" || snap.CurrentPlayerIndex != 0 || !snap.IsActive {
		t.Errorf("snapshot header wrong: %+v", snap)
	}
}

func TestSnapshotUnaddressedHasNoHand(t *testing.T) {
	eng := newFakeEngine(3, 1)
	if snap := BuildSnapshot(eng, -1); snap.YourHand != nil {
		t.Errorf("unaddressed snapshot carries a hand: %v", snap.YourHand)
	}
	// out-of-range recipients get the redacted form too
	if snap := BuildSnapshot(eng, 9); snap.YourHand != nil {
		t.Errorf("out-of-range recipient got a hand: %v", snap.YourHand)
	}
}

func TestSnapshotRebuiltFresh(t *testing.T) {
	eng := newFakeEngine(2, 2)
	a := BuildSnapshot(eng, 0)
	if err := eng.Play(0, nil, ""); err != nil {
		t.Fatal(err)
	}
	b := BuildSnapshot(eng, 0)
	if a.CurrentPlayerIndex == b.CurrentPlayerIndex {
		t.Error("snapshot did not reflect the applied move")
	}
}
