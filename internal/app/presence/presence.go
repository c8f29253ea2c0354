/*
Package presence implements the presence and moderation state machine.

Each identity carries a status in {ONLINE, AWAY, OFFLINE} crossed with an
independent mute flag. The transitions are few and explicit: login forces
ONLINE, logout forces OFFLINE (or deletes a system guest outright), a user
may move itself between ONLINE and AWAY, and only an admin may flip another
user's mute flag. There are no timers and no hidden transitions.
*/
package presence

import (
	"context"
	"sort"

	"chatapp/internal/app/user"
	"chatapp/internal/pkg/errs"
	"chatapp/internal/pkg/logx"
)

// UserStore is the identity surface the state machine operates on.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	GetByID(ctx context.Context, id int64) (*user.User, error)
	Save(ctx context.Context, u *user.User) error
	Delete(ctx context.Context, id int64) error
	All(ctx context.Context) ([]*user.User, error)
}

// Machine applies presence and moderation transitions.
type Machine struct {
	users UserStore
}

// NewMachine builds the state machine over the given store.
func NewMachine(users UserStore) *Machine {
	return &Machine{users: users}
}

// Logout transitions the identity to OFFLINE. A guest whose email carries
// the system domain is deleted entirely instead: guests do not persist
// across sessions.
func (m *Machine) Logout(ctx context.Context, email string) (*user.User, error) {
	u, err := m.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, errs.NewError(errs.ErrUserNotFound)
	}

	if u.IsSystemGuest() {
		if err := m.users.Delete(ctx, u.ID); err != nil {
			return nil, errs.NewError(errs.ErrUnknown, err)
		}
		logx.Debug("Deleted guest account at logout", "nickname", u.Nickname)
		return u, nil
	}

	u.Status = user.StatusOffline
	if err := m.users.Save(ctx, u); err != nil {
		return nil, errs.NewError(errs.ErrUnknown, err)
	}
	return u, nil
}

// SetStatus moves the identity to ONLINE or AWAY. OFFLINE is reachable only
// through Logout. An unrecognized status string changes nothing and raises
// no error; the unchanged user is returned.
func (m *Machine) SetStatus(ctx context.Context, email, status string) (*user.User, error) {
	u, err := m.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, errs.NewError(errs.ErrUserNotFound)
	}

	switch status {
	case "away":
		u.Status = user.StatusAway
	case "online":
		u.Status = user.StatusOnline
	default:
		return u, nil
	}

	if err := m.users.Save(ctx, u); err != nil {
		return nil, errs.NewError(errs.ErrUnknown, err)
	}
	return u, nil
}

// ToggleMute flips the mute flag of the target identity. Only an ADMIN actor
// may do this; there are no separate mute and unmute entry points.
func (m *Machine) ToggleMute(ctx context.Context, actorEmail string, targetID int64) (*user.User, error) {
	actor, err := m.users.GetByEmail(ctx, actorEmail)
	if err != nil {
		return nil, errs.NewError(errs.ErrUserNotFound)
	}

	if actor.Type != user.TypeAdmin {
		return nil, errs.NewError(errs.ErrNotAdmin)
	}

	target, err := m.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, errs.NewError(errs.ErrUserNotFound)
	}

	target.IsMute = !target.IsMute
	if err := m.users.Save(ctx, target); err != nil {
		return nil, errs.NewError(errs.ErrUnknown, err)
	}

	logx.Info("Mute flag toggled", "target_id", targetID, "muted", target.IsMute)
	return target, nil
}

// UserByEmail looks an identity up by email.
func (m *Machine) UserByEmail(ctx context.Context, email string) (*user.User, error) {
	u, err := m.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, errs.NewError(errs.ErrUserNotFound)
	}
	return u, nil
}

// ActiveUsers lists every identity that is not OFFLINE, ordered by explicit
// role rank: admins, then registered users, then guests.
func (m *Machine) ActiveUsers(ctx context.Context) ([]*user.User, error) {
	all, err := m.users.All(ctx)
	if err != nil {
		return nil, errs.NewError(errs.ErrUnknown, err)
	}

	var active []*user.User
	for _, u := range all {
		if u.Status != user.StatusOffline {
			active = append(active, u)
		}
	}

	sort.SliceStable(active, func(i, j int) bool {
		return user.Rank(active[i].Type) < user.Rank(active[j].Type)
	})

	return active, nil
}
