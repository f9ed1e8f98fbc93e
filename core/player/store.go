// Package player holds the per-user player and queue state. The store is the
// single source of truth for what is playing and what is queued; every
// mutation publishes a snapshot to subscribers.
package player

import (
	"math/rand"
	"sync"

	"neurobeats/model"
)

// Store holds one user's player state. Construct with NewStore; the zero
// value is not usable. All methods are safe for concurrent use.
//
// Queue operations never fail: an empty queue degrades to a no-op. Volume is
// stored as given; callers clamp to 0..1 before setting.
type Store struct {
	mu    sync.Mutex
	state model.PlayerState

	subs   map[int]chan model.PlayerState
	nextID int

	// randIndex picks the shuffle target; swappable in tests.
	randIndex func(n int) int
}

// NewStore creates a player store with the application defaults: no track,
// paused, volume 0.8.
func NewStore() *Store {
	return &Store{
		state: model.PlayerState{
			Volume: 0.8,
			Queue:  []model.Track{},
			Repeat: model.RepeatNone,
		},
		subs:      make(map[int]chan model.PlayerState),
		randIndex: rand.Intn,
	}
}

// Snapshot returns a copy of the current state. The queue slice is copied so
// callers cannot mutate store internals.
func (s *Store) Snapshot() model.PlayerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() model.PlayerState {
	snap := s.state
	snap.Queue = make([]model.Track, len(s.state.Queue))
	copy(snap.Queue, s.state.Queue)
	if s.state.CurrentTrack != nil {
		track := *s.state.CurrentTrack
		snap.CurrentTrack = &track
	}
	return snap
}

// Subscribe registers a listener for state snapshots. Slow subscribers skip
// intermediate snapshots rather than blocking mutations. The returned cancel
// func must be called to release the subscription.
func (s *Store) Subscribe() (<-chan model.PlayerState, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan model.PlayerState, 1)
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// notifyLocked pushes the current snapshot to every subscriber, dropping the
// stale pending snapshot of any subscriber that has not caught up.
func (s *Store) notifyLocked() {
	snap := s.snapshotLocked()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}

// SetCurrentTrack replaces the current track. The queue and progress state
// are left untouched.
func (s *Store) SetCurrentTrack(track model.Track) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := track
	s.state.CurrentTrack = &t
	s.notifyLocked()
}

// SetIsPlaying sets the playing flag.
func (s *Store) SetIsPlaying(playing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.IsPlaying = playing
	s.notifyLocked()
}

// SetVolume sets the volume as given. The store does not clamp; that is the
// caller's contract.
func (s *Store) SetVolume(volume float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Volume = volume
	s.notifyLocked()
}

// SetProgress sets the playback position in seconds.
func (s *Store) SetProgress(seconds float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Progress = seconds
	s.notifyLocked()
}

// SetDuration sets the current track duration in seconds.
func (s *Store) SetDuration(seconds float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Duration = seconds
	s.notifyLocked()
}

// AddToQueue appends the track. Insertion order is queue order and a track
// may appear more than once.
func (s *Store) AddToQueue(track model.Track) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Queue = append(s.state.Queue, track)
	s.notifyLocked()
}

// RemoveFromQueue removes the track at index. Out-of-range indexes are
// ignored. The current index shifts down when an earlier position is removed
// and is clamped to the remaining queue, so it keeps pointing at a valid
// entry; the current track is refreshed if the index moved.
func (s *Store) RemoveFromQueue(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.state.Queue) {
		return
	}
	s.state.Queue = append(s.state.Queue[:index], s.state.Queue[index+1:]...)

	if index < s.state.CurrentIndex {
		s.state.CurrentIndex--
	}
	if max := len(s.state.Queue) - 1; s.state.CurrentIndex > max {
		if max < 0 {
			s.state.CurrentIndex = 0
		} else {
			s.state.CurrentIndex = max
		}
	}
	s.notifyLocked()
}

// ClearQueue empties the queue and resets the index. Playback state and the
// current track are untouched.
func (s *Store) ClearQueue() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Queue = []model.Track{}
	s.state.CurrentIndex = 0
	s.notifyLocked()
}

// NextTrack advances the queue. With shuffle on, the target is uniformly
// random over the whole queue (the current index is not excluded); otherwise
// it is (currentIndex+1) mod len, wrapping to the start. No-op on an empty
// queue.
func (s *Store) NextTrack() {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.state.Queue)
	if n == 0 {
		return
	}

	var next int
	if s.state.Shuffle {
		next = s.randIndex(n)
	} else {
		next = (s.state.CurrentIndex + 1) % n
	}

	s.state.CurrentIndex = next
	track := s.state.Queue[next]
	s.state.CurrentTrack = &track
	s.notifyLocked()
}

// PreviousTrack steps back one position, wrapping to the end at index 0.
// Shuffle is ignored. No-op on an empty queue.
func (s *Store) PreviousTrack() {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.state.Queue)
	if n == 0 {
		return
	}

	prev := s.state.CurrentIndex - 1
	if prev < 0 {
		prev = n - 1
	}

	s.state.CurrentIndex = prev
	track := s.state.Queue[prev]
	s.state.CurrentTrack = &track
	s.notifyLocked()
}

// ToggleShuffle flips the shuffle flag. The queue order itself is never
// reshuffled; shuffle only changes NextTrack selection.
func (s *Store) ToggleShuffle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Shuffle = !s.state.Shuffle
	s.notifyLocked()
}

// ToggleRepeat cycles the repeat mode none -> all -> one -> none.
func (s *Store) ToggleRepeat() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Repeat = s.state.Repeat.Next()
	s.notifyLocked()
}
