//go:build linux

package platform

import "testing"

func TestHintsUrgency(t *testing.T) {
	if got := hints(Options{})["urgency"].Value(); got != urgencyNormal {
		t.Fatalf("normal urgency = %v", got)
	}
	if got := hints(Options{Urgent: true})["urgency"].Value(); got != urgencyCritical {
		t.Fatalf("urgent urgency = %v", got)
	}
	if expiry(Options{Urgent: true}) != 0 {
		t.Fatal("urgent notifications should not expire")
	}
}
