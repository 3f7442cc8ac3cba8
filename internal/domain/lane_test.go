package domain

import (
	"errors"
	"testing"
)

func TestStopTypeLane(t *testing.T) {
	cases := map[StopType]DutyLane{
		StopPickup:  LaneOnDuty,
		StopDropoff: LaneOnDuty,
		StopFuel:    LaneOnDuty,
		StopBreak:   LaneOff,
		StopRest:    LaneSleeperBerth,
	}

	for st, want := range cases {
		got, err := st.Lane()
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", st, err)
		}
		if got != want {
			t.Errorf("%s lane = %v, want %v", st, got, want)
		}
	}

	if _, err := StopType("nap").Lane(); !errors.Is(err, ErrUnknownLane) {
		t.Fatalf("unknown stop type err = %v, want ErrUnknownLane", err)
	}
}

func TestLaneWireNames(t *testing.T) {
	for _, l := range AllLanes {
		k, err := ParseLaneKey(l.Key())
		if err != nil || k != l {
			t.Errorf("ParseLaneKey(%q) = %v, %v", l.Key(), k, err)
		}
		s, err := ParseStatus(l.Status())
		if err != nil || s != l {
			t.Errorf("ParseStatus(%q) = %v, %v", l.Status(), s, err)
		}
	}

	if _, err := ParseStatus("off"); !errors.Is(err, ErrUnknownLane) {
		t.Errorf("ParseStatus is case sensitive, got err = %v", err)
	}
	if _, err := ParseLaneKey("SLEEPER"); !errors.Is(err, ErrUnknownLane) {
		t.Errorf("ParseLaneKey(SLEEPER) err = %v, want ErrUnknownLane", err)
	}
	if LaneDriving.Index() != 2 {
		t.Errorf("driving index = %d, want 2", LaneDriving.Index())
	}
}
