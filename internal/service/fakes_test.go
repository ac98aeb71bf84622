package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"fridgehub/groups/internal/model"
	"fridgehub/groups/internal/repository"
)

// In-memory repository fakes preserving the semantic contracts of the
// Postgres implementations: unique invite codes across all groups, set
// semantics on members, owner row written at group creation.

type memberRow struct {
	userID   uuid.UUID
	joinedAt time.Time
}

type fakeGroupRepo struct {
	mu       sync.Mutex
	groups   map[uuid.UUID]*model.Group
	memberOf map[uuid.UUID][]memberRow
	users    *fakeUserRepo // optional, for ListMembers preload
}

func newFakeGroupRepo(users *fakeUserRepo) *fakeGroupRepo {
	return &fakeGroupRepo{
		groups:   make(map[uuid.UUID]*model.Group),
		memberOf: make(map[uuid.UUID][]memberRow),
		users:    users,
	}
}

func (r *fakeGroupRepo) codeTaken(code string, except uuid.UUID) bool {
	for id, g := range r.groups {
		if id != except && g.InviteCode == code {
			return true
		}
	}
	return false
}

func (r *fakeGroupRepo) Create(_ context.Context, group *model.Group) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.codeTaken(group.InviteCode, uuid.Nil) {
		return repository.ErrDuplicateInviteCode
	}
	if group.ID == uuid.Nil {
		group.ID = uuid.New()
	}
	group.CreatedAt = time.Now()
	cp := *group
	r.groups[group.ID] = &cp
	r.memberOf[group.ID] = []memberRow{{userID: group.OwnerID, joinedAt: time.Now()}}
	return nil
}

func (r *fakeGroupRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.groups[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *g
	return &cp, nil
}

func (r *fakeGroupRepo) GetByInviteCode(_ context.Context, code string) (*model.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, g := range r.groups {
		if g.InviteCode == code {
			cp := *g
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeGroupRepo) ListForUser(_ context.Context, userID uuid.UUID) ([]model.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []model.Group
	for id, g := range r.groups {
		if g.OwnerID == userID {
			out = append(out, *g)
			continue
		}
		for _, m := range r.memberOf[id] {
			if m.userID == userID {
				out = append(out, *g)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeGroupRepo) UpdateInviteCode(_ context.Context, groupID uuid.UUID, code string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.groups[groupID]
	if !ok {
		return repository.ErrNotFound
	}
	if r.codeTaken(code, groupID) {
		return repository.ErrDuplicateInviteCode
	}
	g.InviteCode = code
	g.InviteCodeExpiresAt = expiresAt
	return nil
}

func (r *fakeGroupRepo) AddMember(_ context.Context, groupID, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.groups[groupID]; !ok {
		return repository.ErrNotFound
	}
	for _, m := range r.memberOf[groupID] {
		if m.userID == userID {
			return repository.ErrDuplicateMember
		}
	}
	r.memberOf[groupID] = append(r.memberOf[groupID], memberRow{userID: userID, joinedAt: time.Now()})
	return nil
}

func (r *fakeGroupRepo) RemoveMember(_ context.Context, groupID, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := r.memberOf[groupID]
	for i, m := range rows {
		if m.userID == userID {
			r.memberOf[groupID] = append(rows[:i], rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeGroupRepo) ListMembers(_ context.Context, groupID uuid.UUID) ([]model.GroupMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []model.GroupMember
	for _, m := range r.memberOf[groupID] {
		row := model.GroupMember{GroupID: groupID, UserID: m.userID, JoinedAt: m.joinedAt}
		if r.users != nil {
			if u, ok := r.users.byID[m.userID]; ok {
				row.User = *u
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func (r *fakeGroupRepo) CountMembers(_ context.Context, groupID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.memberOf[groupID])), nil
}

func (r *fakeGroupRepo) IsMember(_ context.Context, groupID, userID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range r.memberOf[groupID] {
		if m.userID == userID {
			return true, nil
		}
	}
	return false, nil
}

var _ repository.GroupRepository = (*fakeGroupRepo)(nil)

type fakeUserRepo struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[uuid.UUID]*model.User)}
}

func (r *fakeUserRepo) add(name, email string) *model.User {
	r.mu.Lock()
	defer r.mu.Unlock()

	u := &model.User{ID: uuid.New(), Name: name, Email: email}
	r.byID[u.ID] = u
	return u
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.byID {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	cp := *user
	r.byID[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []model.Notification
	createErr     error
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return r.createErr
	}
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	r.notifications = append(r.notifications, *n)
	return nil
}

func (r *fakeNotificationRepo) ListForRecipient(_ context.Context, recipientID uuid.UUID) ([]model.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := time.Now().Add(-model.NotificationRetention)
	kept := r.notifications[:0]
	var out []model.Notification
	for _, n := range r.notifications {
		if n.RecipientID == recipientID && n.CreatedAt.Before(cutoff) {
			continue
		}
		kept = append(kept, n)
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	r.notifications = kept
	return out, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, id, recipientID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.notifications {
		if r.notifications[i].ID == id && r.notifications[i].RecipientID == recipientID {
			r.notifications[i].Read = true
			return nil
		}
	}
	return repository.ErrNotFound
}

var _ repository.NotificationRepository = (*fakeNotificationRepo)(nil)

type sentMail struct {
	to      string
	subject string
	body    string
}

type fakeMailer struct {
	mu      sync.Mutex
	sent    []sentMail
	sendErr error
}

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

var _ MailSender = (*fakeMailer)(nil)
