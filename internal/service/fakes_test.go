package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/paige-inner-circle/legacy-backend/internal/repository"
)

// In-memory repository fakes. Unique constraints mirror the migration by
// returning a PgError with SQLSTATE 23505.

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

// ---- members ----

type fakeMemberRepo struct {
	members map[string]*repository.Member
	nextID  int
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: map[string]*repository.Member{}}
}

func (f *fakeMemberRepo) Create(_ context.Context, member *repository.Member) error {
	for _, m := range f.members {
		if m.Email == member.Email {
			return uniqueViolation("members_email_key")
		}
	}
	f.nextID++
	member.ID = fmt.Sprintf("member-%d", f.nextID)
	member.CreatedAt = time.Now()
	f.members[member.ID] = member
	return nil
}

func (f *fakeMemberRepo) FindByID(_ context.Context, id string) (*repository.Member, error) {
	return f.members[id], nil
}

func (f *fakeMemberRepo) FindByEmail(_ context.Context, email string) (*repository.Member, error) {
	for _, m := range f.members {
		if m.Email == email {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeMemberRepo) FindAll(_ context.Context, includeInactive bool, limit, offset int) ([]*repository.Member, error) {
	var out []*repository.Member
	for _, m := range f.members {
		if includeInactive || m.IsActive {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMemberRepo) Update(_ context.Context, member *repository.Member) error {
	f.members[member.ID] = member
	return nil
}

func (f *fakeMemberRepo) SetActive(_ context.Context, id string, active bool) error {
	if m, ok := f.members[id]; ok {
		m.IsActive = active
	}
	return nil
}

func (f *fakeMemberRepo) MarkLoggedIn(_ context.Context, id string) error {
	if m, ok := f.members[id]; ok {
		m.HasLoggedIn = true
	}
	return nil
}

func (f *fakeMemberRepo) Count(_ context.Context) (int, error) {
	return len(f.members), nil
}

func (f *fakeMemberRepo) DeleteCascade(_ context.Context, id string) error {
	delete(f.members, id)
	return nil
}

// ---- events ----

type fakeEventRepo struct {
	events map[string]*repository.Event
	nextID int
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: map[string]*repository.Event{}}
}

func (f *fakeEventRepo) Create(_ context.Context, event *repository.Event) error {
	f.nextID++
	event.ID = fmt.Sprintf("event-%d", f.nextID)
	event.IsActive = true
	event.CreatedAt = time.Now()
	f.events[event.ID] = event
	return nil
}

func (f *fakeEventRepo) FindByID(_ context.Context, id string) (*repository.Event, error) {
	return f.events[id], nil
}

func (f *fakeEventRepo) FindActive(_ context.Context) (*repository.Event, error) {
	for _, e := range f.events {
		if e.IsActive {
			return e, nil
		}
	}
	return nil, nil
}

func (f *fakeEventRepo) FindAll(_ context.Context, includeInactive bool) ([]*repository.Event, error) {
	var out []*repository.Event
	for _, e := range f.events {
		if includeInactive || e.IsActive {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) Update(_ context.Context, event *repository.Event) error {
	f.events[event.ID] = event
	return nil
}

func (f *fakeEventRepo) SetActive(_ context.Context, id string, active bool) error {
	if e, ok := f.events[id]; ok {
		e.IsActive = active
	}
	return nil
}

// ---- rsvps ----

type fakeRSVPRepo struct {
	rsvps  map[string]*repository.RSVP
	nextID int
}

func newFakeRSVPRepo() *fakeRSVPRepo {
	return &fakeRSVPRepo{rsvps: map[string]*repository.RSVP{}}
}

func (f *fakeRSVPRepo) Create(_ context.Context, rsvp *repository.RSVP) error {
	for _, r := range f.rsvps {
		if r.MemberID == rsvp.MemberID && r.EventID == rsvp.EventID {
			return uniqueViolation("rsvps_member_id_event_id_key")
		}
	}
	f.nextID++
	rsvp.ID = fmt.Sprintf("rsvp-%d", f.nextID)
	now := time.Now()
	rsvp.RespondedAt = &now
	rsvp.CreatedAt = now
	f.rsvps[rsvp.ID] = rsvp
	return nil
}

func (f *fakeRSVPRepo) FindByID(_ context.Context, id string) (*repository.RSVP, error) {
	return f.rsvps[id], nil
}

func (f *fakeRSVPRepo) FindByMemberAndEvent(_ context.Context, memberID, eventID string) (*repository.RSVP, error) {
	for _, r := range f.rsvps {
		if r.MemberID == memberID && r.EventID == eventID {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeRSVPRepo) FindByEvent(_ context.Context, eventID string) ([]*repository.RSVP, error) {
	var out []*repository.RSVP
	for _, r := range f.rsvps {
		if r.EventID == eventID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRSVPRepo) UpdateStatus(_ context.Context, id, status string, message *string) error {
	if r, ok := f.rsvps[id]; ok {
		r.Status = status
		if message != nil {
			r.ResponseMessage = message
		}
	}
	return nil
}

func (f *fakeRSVPRepo) CountByStatus(_ context.Context, eventID string) (map[string]int, error) {
	counts := map[string]int{}
	for _, r := range f.rsvps {
		if r.EventID == eventID {
			counts[r.Status]++
		}
	}
	return counts, nil
}

// ---- legacy passes ----

type fakePassRepo struct {
	passes  map[string]*repository.LegacyPass
	nextID  int
	nextSeq int64
}

func newFakePassRepo() *fakePassRepo {
	return &fakePassRepo{passes: map[string]*repository.LegacyPass{}}
}

func (f *fakePassRepo) Create(_ context.Context, pass *repository.LegacyPass) error {
	for _, p := range f.passes {
		if p.MemberID == pass.MemberID && p.EventID == pass.EventID {
			return uniqueViolation("legacy_passes_member_id_event_id_key")
		}
		if p.Token == pass.Token {
			return uniqueViolation("legacy_passes_token_key")
		}
	}
	f.nextID++
	pass.ID = fmt.Sprintf("pass-%d", f.nextID)
	pass.IsActive = true
	pass.CreatedAt = time.Now()
	f.passes[pass.ID] = pass
	return nil
}

func (f *fakePassRepo) FindByID(_ context.Context, id string) (*repository.LegacyPass, error) {
	return f.passes[id], nil
}

func (f *fakePassRepo) FindByToken(_ context.Context, token string) (*repository.LegacyPass, error) {
	for _, p := range f.passes {
		if p.Token == token {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePassRepo) FindByMemberAndEvent(_ context.Context, memberID, eventID string) (*repository.LegacyPass, error) {
	for _, p := range f.passes {
		if p.MemberID == memberID && p.EventID == eventID {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePassRepo) FindByMember(_ context.Context, memberID string) ([]*repository.LegacyPass, error) {
	var out []*repository.LegacyPass
	for _, p := range f.passes {
		if p.MemberID == memberID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePassRepo) FindByEvent(_ context.Context, eventID string) ([]*repository.LegacyPass, error) {
	var out []*repository.LegacyPass
	for _, p := range f.passes {
		if p.EventID == eventID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePassRepo) FindMissingAssets(_ context.Context) ([]*repository.LegacyPass, error) {
	var out []*repository.LegacyPass
	for _, p := range f.passes {
		if p.IsActive && (p.QRImagePath == nil || p.FrontImagePath == nil || p.BackImagePath == nil || p.PDFPath == nil) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePassRepo) UpdateAssets(_ context.Context, pass *repository.LegacyPass) error {
	f.passes[pass.ID] = pass
	return nil
}

func (f *fakePassRepo) SetActive(_ context.Context, id string, active bool) error {
	if p, ok := f.passes[id]; ok {
		p.IsActive = active
	}
	return nil
}

func (f *fakePassRepo) NextPassNumber(_ context.Context) (int64, error) {
	f.nextSeq++
	return f.nextSeq, nil
}

// ---- payments ----

type fakePaymentRepo struct {
	payments map[string]*repository.Payment
	nextID   int
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: map[string]*repository.Payment{}}
}

func (f *fakePaymentRepo) Create(_ context.Context, payment *repository.Payment) error {
	for _, p := range f.payments {
		if p.LegacyPassID == payment.LegacyPassID {
			return uniqueViolation("payments_legacy_pass_id_key")
		}
	}
	f.nextID++
	payment.ID = fmt.Sprintf("payment-%d", f.nextID)
	payment.CreatedAt = time.Now()
	f.payments[payment.ID] = payment
	return nil
}

func (f *fakePaymentRepo) FindByID(_ context.Context, id string) (*repository.Payment, error) {
	return f.payments[id], nil
}

func (f *fakePaymentRepo) FindByLegacyPass(_ context.Context, legacyPassID string) (*repository.Payment, error) {
	for _, p := range f.payments {
		if p.LegacyPassID == legacyPassID {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePaymentRepo) FindByMember(_ context.Context, memberID string) ([]*repository.Payment, error) {
	var out []*repository.Payment
	for _, p := range f.payments {
		if p.MemberID == memberID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) FindByStatus(_ context.Context, status string) ([]*repository.Payment, error) {
	var out []*repository.Payment
	for _, p := range f.payments {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) SetMethod(_ context.Context, id, method, contactEmail string) error {
	if p, ok := f.payments[id]; ok {
		p.Method = &method
		p.ContactEmail = contactEmail
	}
	return nil
}

func (f *fakePaymentRepo) MarkVerified(_ context.Context, id, adminEmail string, notes *string) error {
	if p, ok := f.payments[id]; ok {
		p.Status = "verified"
		p.VerifiedBy = &adminEmail
		now := time.Now()
		p.VerifiedAt = &now
		if notes != nil {
			p.Notes = notes
		}
	}
	return nil
}

func (f *fakePaymentRepo) MarkFailed(_ context.Context, id string, notes *string) error {
	if p, ok := f.payments[id]; ok {
		p.Status = "failed"
		if notes != nil {
			p.Notes = notes
		}
	}
	return nil
}

// ---- memories ----

type fakeMemoryRepo struct {
	memories map[string]*repository.Memory
	nextID   int
}

func newFakeMemoryRepo() *fakeMemoryRepo {
	return &fakeMemoryRepo{memories: map[string]*repository.Memory{}}
}

func (f *fakeMemoryRepo) Create(_ context.Context, memory *repository.Memory) error {
	for _, m := range f.memories {
		if m.MemberID == memory.MemberID && m.EventID == memory.EventID {
			return uniqueViolation("memories_member_id_event_id_key")
		}
	}
	f.nextID++
	memory.ID = fmt.Sprintf("memory-%d", f.nextID)
	memory.CreatedAt = time.Now()
	f.memories[memory.ID] = memory
	return nil
}

func (f *fakeMemoryRepo) FindByID(_ context.Context, id string) (*repository.Memory, error) {
	return f.memories[id], nil
}

func (f *fakeMemoryRepo) FindByMemberAndEvent(_ context.Context, memberID, eventID string) (*repository.Memory, error) {
	for _, m := range f.memories {
		if m.MemberID == memberID && m.EventID == eventID {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeMemoryRepo) FindByMember(_ context.Context, memberID string) ([]*repository.Memory, error) {
	var out []*repository.Memory
	for _, m := range f.memories {
		if m.MemberID == memberID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMemoryRepo) FindByEvent(_ context.Context, eventID string) ([]*repository.Memory, error) {
	var out []*repository.Memory
	for _, m := range f.memories {
		if m.EventID == eventID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMemoryRepo) Update(_ context.Context, memory *repository.Memory) error {
	f.memories[memory.ID] = memory
	return nil
}

func (f *fakeMemoryRepo) Delete(_ context.Context, id string) error {
	delete(f.memories, id)
	return nil
}
