package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"neurobeats/model"
)

type fakeUserRepo struct {
	identityCalls []identityCall
	identityErr   error
}

type identityCall struct {
	userID    int64
	email     string
	username  string
	avatarURL string
}

func (f *fakeUserRepo) CreateUser(user *model.User) (int64, error)          { return 0, nil }
func (f *fakeUserRepo) GetUserByID(id int64) (*model.User, error)           { return nil, nil }
func (f *fakeUserRepo) GetUserByUsername(u string) (*model.User, error)     { return nil, nil }
func (f *fakeUserRepo) GetUserByEmail(email string) (*model.User, error)    { return nil, nil }
func (f *fakeUserRepo) UpdateIdentity(userID int64, email, username, avatarURL string) error {
	f.identityCalls = append(f.identityCalls, identityCall{userID, email, username, avatarURL})
	return f.identityErr
}

type fakeProfileStore struct {
	profiles map[int64]*model.Profile
	taken    map[string]bool
	updated  []*model.Profile
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: map[int64]*model.Profile{}, taken: map[string]bool{}}
}

func (f *fakeProfileStore) CreateProfile(p *model.Profile) error {
	f.profiles[p.UserID] = p
	return nil
}

func (f *fakeProfileStore) GetProfile(userID int64) (*model.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfileStore) UpdateProfile(p *model.Profile) error {
	cp := *p
	f.profiles[p.UserID] = &cp
	f.updated = append(f.updated, &cp)
	return nil
}

func (f *fakeProfileStore) UpdateIdentityFields(userID int64, email, username, avatarURL string) error {
	return nil
}

func (f *fakeProfileStore) IsUsernameAvailable(username string, excludeUserID int64) (bool, error) {
	return !f.taken[username], nil
}

func authedRequest(method, target string, body []byte, userID int64, username string) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	ctx := context.WithValue(req.Context(), ctxUserID, userID)
	ctx = context.WithValue(ctx, ctxUsername, username)
	return req.WithContext(ctx)
}

func TestUpdateProfileRefreshesIdentityRow(t *testing.T) {
	users := &fakeUserRepo{}
	profiles := newFakeProfileStore()
	profiles.profiles[7] = &model.Profile{
		UserID:    7,
		Username:  "neo",
		Email:     "neo@example.com",
		AvatarURL: "https://cdn.example/neo.jpg",
	}
	h := &APIHandler{userRepo: users, profileRepo: profiles}

	body, _ := json.Marshal(map[string]string{"username": "morpheus"})
	req := authedRequest(http.MethodPut, "/api/profile", body, 7, "neo")
	rec := httptest.NewRecorder()

	h.UpdateProfileHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := profiles.profiles[7].Username; got != "morpheus" {
		t.Errorf("profile username not updated: %q", got)
	}
	if len(users.identityCalls) != 1 {
		t.Fatalf("expected one identity refresh, got %d", len(users.identityCalls))
	}
	call := users.identityCalls[0]
	if call.userID != 7 || call.username != "morpheus" || call.email != "neo@example.com" {
		t.Errorf("identity refresh carried wrong values: %+v", call)
	}
	if call.avatarURL != "https://cdn.example/neo.jpg" {
		t.Errorf("identity refresh dropped avatar: %q", call.avatarURL)
	}
}

func TestUpdateProfileTakenUsernameSkipsIdentityRefresh(t *testing.T) {
	users := &fakeUserRepo{}
	profiles := newFakeProfileStore()
	profiles.profiles[7] = &model.Profile{UserID: 7, Username: "neo", Email: "neo@example.com"}
	profiles.taken["trinity"] = true
	h := &APIHandler{userRepo: users, profileRepo: profiles}

	body, _ := json.Marshal(map[string]string{"username": "trinity"})
	req := authedRequest(http.MethodPut, "/api/profile", body, 7, "neo")
	rec := httptest.NewRecorder()

	h.UpdateProfileHandler(rec, req)

	if rec.Code == http.StatusOK {
		t.Fatal("expected rejection for taken username")
	}
	if len(users.identityCalls) != 0 {
		t.Errorf("identity row must not change on rejected update, got %d calls", len(users.identityCalls))
	}
	if got := profiles.profiles[7].Username; got != "neo" {
		t.Errorf("profile username must stay, got %q", got)
	}
}
