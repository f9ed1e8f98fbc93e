package player

import (
	"testing"

	"neurobeats/model"
)

func track(id string) model.Track {
	return model.Track{ID: id, Title: "Track " + id}
}

func fillQueue(s *Store, ids ...string) {
	for _, id := range ids {
		s.AddToQueue(track(id))
	}
}

func TestNewStoreDefaults(t *testing.T) {
	s := NewStore()
	snap := s.Snapshot()

	if snap.CurrentTrack != nil {
		t.Errorf("expected no current track, got %v", snap.CurrentTrack)
	}
	if snap.IsPlaying {
		t.Error("expected paused")
	}
	if snap.Volume != 0.8 {
		t.Errorf("expected default volume 0.8, got %v", snap.Volume)
	}
	if len(snap.Queue) != 0 {
		t.Errorf("expected empty queue, got %d entries", len(snap.Queue))
	}
	if snap.Repeat != model.RepeatNone {
		t.Errorf("expected repeat none, got %v", snap.Repeat)
	}
}

func TestNextTrackEmptyQueueIsNoOp(t *testing.T) {
	s := NewStore()
	s.NextTrack()
	s.PreviousTrack()

	snap := s.Snapshot()
	if snap.CurrentTrack != nil || snap.CurrentIndex != 0 {
		t.Errorf("empty queue must not change state, got %+v", snap)
	}
}

func TestNextTrackAdvancesAndWraps(t *testing.T) {
	s := NewStore()
	fillQueue(s, "a", "b", "c")

	s.NextTrack()
	if snap := s.Snapshot(); snap.CurrentIndex != 1 || snap.CurrentTrack.ID != "b" {
		t.Fatalf("expected index 1 track b, got index %d track %v", snap.CurrentIndex, snap.CurrentTrack)
	}

	s.NextTrack()
	s.NextTrack()
	if snap := s.Snapshot(); snap.CurrentIndex != 0 || snap.CurrentTrack.ID != "a" {
		t.Fatalf("expected wrap to index 0 track a, got index %d track %v", snap.CurrentIndex, snap.CurrentTrack)
	}
}

func TestPreviousTrackWrapsToEnd(t *testing.T) {
	s := NewStore()
	fillQueue(s, "a", "b", "c")

	s.PreviousTrack()
	snap := s.Snapshot()
	if snap.CurrentIndex != 2 || snap.CurrentTrack.ID != "c" {
		t.Fatalf("expected wrap to index 2 track c, got index %d track %v", snap.CurrentIndex, snap.CurrentTrack)
	}
}

func TestNextTrackShuffleUsesRandomIndex(t *testing.T) {
	s := NewStore()
	fillQueue(s, "a", "b", "c", "d")

	var sawN int
	s.randIndex = func(n int) int {
		sawN = n
		return 2
	}
	s.ToggleShuffle()
	s.NextTrack()

	if sawN != 4 {
		t.Errorf("shuffle must draw over the whole queue, got n=%d", sawN)
	}
	if snap := s.Snapshot(); snap.CurrentIndex != 2 || snap.CurrentTrack.ID != "c" {
		t.Errorf("expected shuffle target index 2 track c, got index %d track %v", snap.CurrentIndex, snap.CurrentTrack)
	}
}

func TestShuffleMayRepeatCurrentTrack(t *testing.T) {
	s := NewStore()
	fillQueue(s, "a", "b")
	s.ToggleShuffle()

	// The draw includes the current index, so landing on it again is valid.
	s.randIndex = func(n int) int { return 0 }
	s.NextTrack()
	s.NextTrack()

	if snap := s.Snapshot(); snap.CurrentIndex != 0 {
		t.Errorf("expected to stay at index 0, got %d", snap.CurrentIndex)
	}
}

func TestPreviousTrackIgnoresShuffle(t *testing.T) {
	s := NewStore()
	fillQueue(s, "a", "b", "c")
	s.ToggleShuffle()
	s.randIndex = func(n int) int {
		t.Error("previous must not draw a random index")
		return 0
	}

	s.PreviousTrack()
	if snap := s.Snapshot(); snap.CurrentIndex != 2 {
		t.Errorf("expected index 2, got %d", snap.CurrentIndex)
	}
}

func TestToggleRepeatCycles(t *testing.T) {
	s := NewStore()

	want := []model.RepeatMode{model.RepeatAll, model.RepeatOne, model.RepeatNone}
	for _, mode := range want {
		s.ToggleRepeat()
		if got := s.Snapshot().Repeat; got != mode {
			t.Fatalf("expected repeat %v, got %v", mode, got)
		}
	}
}

func TestRemoveFromQueueShiftsCurrentIndex(t *testing.T) {
	s := NewStore()
	fillQueue(s, "a", "b", "c")
	s.NextTrack()
	s.NextTrack() // index 2, track c

	s.RemoveFromQueue(0)
	snap := s.Snapshot()
	if snap.CurrentIndex != 1 {
		t.Errorf("expected index shifted to 1, got %d", snap.CurrentIndex)
	}
	if snap.Queue[snap.CurrentIndex].ID != "c" {
		t.Errorf("index must keep pointing at track c, got %s", snap.Queue[snap.CurrentIndex].ID)
	}
}

func TestRemoveFromQueueClampsIndex(t *testing.T) {
	s := NewStore()
	fillQueue(s, "a", "b")
	s.NextTrack() // index 1

	s.RemoveFromQueue(1)
	snap := s.Snapshot()
	if snap.CurrentIndex != 0 {
		t.Errorf("expected index clamped to 0, got %d", snap.CurrentIndex)
	}

	s.RemoveFromQueue(0)
	snap = s.Snapshot()
	if len(snap.Queue) != 0 || snap.CurrentIndex != 0 {
		t.Errorf("expected empty queue index 0, got %d entries index %d", len(snap.Queue), snap.CurrentIndex)
	}
}

func TestRemoveFromQueueOutOfRange(t *testing.T) {
	s := NewStore()
	fillQueue(s, "a")

	s.RemoveFromQueue(-1)
	s.RemoveFromQueue(5)
	if got := len(s.Snapshot().Queue); got != 1 {
		t.Errorf("out-of-range removal must be ignored, queue has %d entries", got)
	}
}

func TestClearQueueKeepsCurrentTrack(t *testing.T) {
	s := NewStore()
	fillQueue(s, "a", "b")
	s.NextTrack()
	s.SetIsPlaying(true)

	s.ClearQueue()
	snap := s.Snapshot()
	if len(snap.Queue) != 0 || snap.CurrentIndex != 0 {
		t.Errorf("expected empty queue index 0, got %d entries index %d", len(snap.Queue), snap.CurrentIndex)
	}
	if snap.CurrentTrack == nil || snap.CurrentTrack.ID != "b" {
		t.Errorf("clear must not touch the current track, got %v", snap.CurrentTrack)
	}
	if !snap.IsPlaying {
		t.Error("clear must not pause playback")
	}
}

func TestAddToQueueAllowsDuplicates(t *testing.T) {
	s := NewStore()
	fillQueue(s, "a", "a", "a")
	if got := len(s.Snapshot().Queue); got != 3 {
		t.Errorf("expected 3 entries, got %d", got)
	}
}

func TestAddThenRemoveRestoresQueue(t *testing.T) {
	s := NewStore()
	fillQueue(s, "a", "b")
	before := s.Snapshot()

	s.AddToQueue(track("c"))
	s.RemoveFromQueue(2)

	after := s.Snapshot()
	if len(after.Queue) != len(before.Queue) {
		t.Fatalf("expected length %d restored, got %d", len(before.Queue), len(after.Queue))
	}
	for i := range before.Queue {
		if after.Queue[i].ID != before.Queue[i].ID {
			t.Errorf("position %d: expected %s, got %s", i, before.Queue[i].ID, after.Queue[i].ID)
		}
	}
	if after.CurrentIndex != before.CurrentIndex {
		t.Errorf("expected index %d restored, got %d", before.CurrentIndex, after.CurrentIndex)
	}
}

func TestSetVolumeStoredAsGiven(t *testing.T) {
	s := NewStore()
	s.SetVolume(0.5)
	if got := s.Snapshot().Volume; got != 0.5 {
		t.Errorf("expected volume 0.5, got %v", got)
	}

	// The store does not clamp; range checking is the caller's contract.
	s.SetVolume(1.4)
	if got := s.Snapshot().Volume; got != 1.4 {
		t.Errorf("expected volume stored as given, got %v", got)
	}
}

func TestSnapshotIsolatesQueue(t *testing.T) {
	s := NewStore()
	fillQueue(s, "a")

	snap := s.Snapshot()
	snap.Queue[0].ID = "mutated"

	if got := s.Snapshot().Queue[0].ID; got != "a" {
		t.Errorf("snapshot mutation leaked into store: %s", got)
	}
}

func TestSubscribeReceivesSnapshots(t *testing.T) {
	s := NewStore()
	ch, cancel := s.Subscribe()
	defer cancel()

	s.SetIsPlaying(true)
	snap := <-ch
	if !snap.IsPlaying {
		t.Error("expected playing snapshot")
	}
}

func TestSubscribeDropsStaleSnapshots(t *testing.T) {
	s := NewStore()
	ch, cancel := s.Subscribe()
	defer cancel()

	// Without draining, only the latest snapshot should be pending.
	s.SetVolume(0.1)
	s.SetVolume(0.2)
	s.SetVolume(0.3)

	snap := <-ch
	if snap.Volume != 0.3 {
		t.Errorf("expected latest snapshot volume 0.3, got %v", snap.Volume)
	}
}

func TestCancelClosesSubscription(t *testing.T) {
	s := NewStore()
	ch, cancel := s.Subscribe()
	cancel()

	if _, ok := <-ch; ok {
		t.Error("expected closed channel after cancel")
	}

	// Cancel twice must not panic, and mutations after cancel must not block.
	cancel()
	s.SetIsPlaying(true)
}

func TestManagerReturnsSameStorePerUser(t *testing.T) {
	m := NewManager()
	a := m.StoreFor(1)
	b := m.StoreFor(1)
	if a != b {
		t.Error("expected the same store for one user")
	}
	if m.StoreFor(2) == a {
		t.Error("expected distinct stores per user")
	}

	m.Drop(1)
	if m.StoreFor(1) == a {
		t.Error("expected a fresh store after drop")
	}
}
