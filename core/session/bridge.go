// Package session adapts validated identity tokens into the app's user
// state and mirrors identities into the profile store.
package session

import (
	"context"
	"sync"

	"neurobeats/logger"
	"neurobeats/model"
	"neurobeats/repository"
)

// State is the bridge's view of the current session.
type State int

const (
	// StateLoading means the identity has not been resolved yet.
	StateLoading State = iota
	// StateUnauthenticated means there is no active session.
	StateUnauthenticated
	// StateAuthenticated means a session is present and the user is populated.
	StateAuthenticated
)

// SyncState tracks the profile-mirroring sequence for one user.
type SyncState int

const (
	SyncIdle SyncState = iota
	SyncRunning
	SyncDone
)

// Bridge observes identity resolution and keeps the profile store in step:
// on the first sighting of a user id it creates a profile row and default
// preferences; on later sightings it refreshes the mutable identity fields.
// A per-user marker guarantees at most one concurrent sync.
type Bridge struct {
	profiles repository.ProfileRepository
	prefs    repository.PreferenceRepository

	mu    sync.Mutex
	state State
	user  *model.User
	syncs map[int64]SyncState
}

// NewBridge creates a bridge in the Loading state.
func NewBridge(profiles repository.ProfileRepository, prefs repository.PreferenceRepository) *Bridge {
	return &Bridge{
		profiles: profiles,
		prefs:    prefs,
		state:    StateLoading,
		syncs:    make(map[int64]SyncState),
	}
}

// State returns the current session state.
func (b *Bridge) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// CurrentUser returns the resolved user, or nil outside Authenticated.
func (b *Bridge) CurrentUser() *model.User {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.user
}

// SyncStateFor reports the profile-sync marker for a user id.
func (b *Bridge) SyncStateFor(userID int64) SyncState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.syncs[userID]
}

// Resolve feeds the bridge an identity resolution result. A nil user moves
// the bridge to Unauthenticated. A non-nil user moves it to Authenticated
// and, on the Unauthenticated/Loading -> Authenticated edge, runs the
// profile sync. Sync failures are logged and never surfaced; the session
// continues in a degraded state with identity data only.
func (b *Bridge) Resolve(ctx context.Context, user *model.User) {
	b.mu.Lock()
	if user == nil {
		b.state = StateUnauthenticated
		b.user = nil
		b.mu.Unlock()
		return
	}

	b.state = StateAuthenticated
	b.user = user

	// The sync marker encodes the authentication edge per user id: Idle means
	// this user has not been synced since their last sign-in.
	runSync := false
	if b.syncs[user.ID] == SyncIdle {
		b.syncs[user.ID] = SyncRunning
		runSync = true
	}
	b.mu.Unlock()

	if runSync {
		b.syncProfile(ctx, user)
	}
}

// Logout records a sign-out. The user's sync marker is re-armed so the next
// Unauthenticated -> Authenticated transition refreshes the profile again.
func (b *Bridge) Logout(userID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.user != nil && b.user.ID == userID {
		b.state = StateUnauthenticated
		b.user = nil
	}
	if b.syncs[userID] == SyncDone {
		b.syncs[userID] = SyncIdle
	}
}

// syncProfile ensures a profile and preferences row exist for the user,
// refreshing mutable identity fields when the profile already exists.
func (b *Bridge) syncProfile(ctx context.Context, user *model.User) {
	err := b.doSync(ctx, user)

	b.mu.Lock()
	if err != nil {
		// Back to idle so the next authentication transition retries.
		b.syncs[user.ID] = SyncIdle
	} else {
		b.syncs[user.ID] = SyncDone
	}
	b.mu.Unlock()

	if err != nil {
		logger.Error("profile sync failed",
			logger.Int64("userId", user.ID),
			logger.ErrorField(err))
	}
}

func (b *Bridge) doSync(ctx context.Context, user *model.User) error {
	existing, err := b.profiles.GetProfile(user.ID)
	if err != nil {
		return err
	}

	if existing == nil {
		profile := &model.Profile{
			UserID:    user.ID,
			Username:  user.Username,
			Email:     user.Email,
			FullName:  user.FullName.String,
			Bio:       "",
			AvatarURL: user.AvatarURL.String,
		}
		if err := b.profiles.CreateProfile(profile); err != nil {
			return err
		}
		if err := b.prefs.Create(ctx, model.DefaultPreferences(user.ID)); err != nil {
			return err
		}
		logger.Info("created profile and default preferences",
			logger.Int64("userId", user.ID),
			logger.String("username", user.Username))
		return nil
	}

	return b.profiles.UpdateIdentityFields(user.ID, user.Email, user.Username, user.AvatarURL.String)
}
