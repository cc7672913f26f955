package domain

import "testing"

func TestDirectionalCallIsValid(t *testing.T) {
	for _, c := range []DirectionalCall{CallBullish, CallBearish, CallNeutral} {
		if !c.IsValid() {
			t.Fatalf("expected %s to be valid", c)
		}
	}
	if DirectionalCall("long").IsValid() {
		t.Fatal("unexpected valid call")
	}
}

func TestFinalActionIsValid(t *testing.T) {
	for _, a := range []FinalAction{ActionStrongBuy, ActionBuy, ActionHold, ActionSell, ActionStrongSell} {
		if !a.IsValid() {
			t.Fatalf("expected %s to be valid", a)
		}
	}
	if FinalAction("dump_everything").IsValid() {
		t.Fatal("unexpected valid action")
	}
}

func TestOutcomeResultIsValid(t *testing.T) {
	if !OutcomeWin.IsValid() || !OutcomeLoss.IsValid() || !OutcomeNeutral.IsValid() {
		t.Fatal("expected outcome enum values to be valid")
	}
	if OutcomeResult("draw").IsValid() {
		t.Fatal("unexpected valid outcome")
	}
}
