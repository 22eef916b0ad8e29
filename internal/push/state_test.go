package push

import (
	"testing"
)

func TestStateDBRoundTrip(t *testing.T) {
	dir := t.TempDir()

	state, err := OpenStateDB(dir)
	if err != nil {
		t.Fatalf("OpenStateDB: %v", err)
	}
	defer state.Close()

	pushed, err := state.IsPushed("abc", "garmin")
	if err != nil {
		t.Fatalf("IsPushed: %v", err)
	}
	if pushed {
		t.Error("expected workout to not be pushed initially")
	}

	if err := state.MarkPushed("abc", "garmin"); err != nil {
		t.Fatalf("MarkPushed: %v", err)
	}

	pushed, err = state.IsPushed("abc", "garmin")
	if err != nil {
		t.Fatalf("IsPushed after mark: %v", err)
	}
	if !pushed {
		t.Error("expected workout to be pushed after marking")
	}

	// Same workout, different platform: independent records.
	pushed, err = state.IsPushed("abc", "intervals")
	if err != nil {
		t.Fatalf("IsPushed other platform: %v", err)
	}
	if pushed {
		t.Error("push state leaked across platforms")
	}
}

func TestStateDBPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	state, err := OpenStateDB(dir)
	if err != nil {
		t.Fatalf("OpenStateDB: %v", err)
	}
	if err := state.MarkPushed("w1", "intervals"); err != nil {
		t.Fatalf("MarkPushed: %v", err)
	}
	if err := state.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	state, err = OpenStateDB(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer state.Close()

	pushed, err := state.IsPushed("w1", "intervals")
	if err != nil {
		t.Fatalf("IsPushed: %v", err)
	}
	if !pushed {
		t.Error("push state lost after reopen")
	}
}

func TestMarkPushedIdempotent(t *testing.T) {
	dir := t.TempDir()

	state, err := OpenStateDB(dir)
	if err != nil {
		t.Fatalf("OpenStateDB: %v", err)
	}
	defer state.Close()

	for range 3 {
		if err := state.MarkPushed("w2", "garmin"); err != nil {
			t.Fatalf("MarkPushed: %v", err)
		}
	}

	pushed, err := state.IsPushed("w2", "garmin")
	if err != nil {
		t.Fatalf("IsPushed: %v", err)
	}
	if !pushed {
		t.Error("expected workout to be pushed")
	}
}
