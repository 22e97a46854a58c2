package auth_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/Supermercado-api/internal/domain"
	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
	"github.com/jhoicas/Supermercado-api/internal/domain/repository"
	"github.com/jhoicas/Supermercado-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// memStore: persistencia en memoria con las mismas restricciones únicas que Postgres.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu      sync.Mutex
	markets map[string]*entity.Supermarket
	users   map[string]*entity.User
	subs    map[string]*entity.Subscription
	links   map[string]*entity.MagicLinkToken // por hash

	failSubscription error // inyecta un fallo al crear la suscripción
	failConfirm      error // inyecta un fallo al confirmar al usuario en el login
}

func newMemStore() *memStore {
	return &memStore{
		markets: map[string]*entity.Supermarket{},
		users:   map[string]*entity.User{},
		subs:    map[string]*entity.Subscription{},
		links:   map[string]*entity.MagicLinkToken{},
	}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for k, v := range s.markets {
		cp := *v
		c.markets[k] = &cp
	}
	for k, v := range s.users {
		cp := *v
		c.users[k] = &cp
	}
	for k, v := range s.subs {
		cp := *v
		c.subs[k] = &cp
	}
	for k, v := range s.links {
		cp := *v
		c.links[k] = &cp
	}
	c.failSubscription = s.failSubscription
	return c
}

// repos sin lock propio: el lock lo toma cada método público o el tx runner.
type marketRepo struct{ s *memStore }
type userRepo struct{ s *memStore }
type subRepo struct{ s *memStore }
type linkRepo struct{ s *memStore }

func (r marketRepo) Create(_ context.Context, m *entity.Supermarket) error {
	for _, existing := range r.s.markets {
		if existing.TaxID == m.TaxID {
			return domain.ErrDuplicateTaxID
		}
	}
	cp := *m
	r.s.markets[m.ID] = &cp
	return nil
}

func (r marketRepo) GetByID(_ context.Context, id string) (*entity.Supermarket, error) {
	if m, ok := r.s.markets[id]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, nil
}

func (r marketRepo) GetByTaxID(_ context.Context, taxID string) (*entity.Supermarket, error) {
	for _, m := range r.s.markets {
		if m.TaxID == taxID {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r marketRepo) List(_ context.Context, _, _ int) ([]*entity.Supermarket, error) {
	var out []*entity.Supermarket
	for _, m := range r.s.markets {
		out = append(out, m)
	}
	return out, nil
}

func (r userRepo) Create(_ context.Context, u *entity.User) error {
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return domain.ErrDuplicateEmail
		}
	}
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	if u, ok := r.s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r userRepo) ListByCompany(_ context.Context, companyID string, _, _ int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.s.users {
		if u.CompanyID == companyID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r userRepo) UpdateRole(_ context.Context, id, companyID string, role entity.Role) error {
	u, ok := r.s.users[id]
	if !ok || u.CompanyID != companyID {
		return domain.ErrNotFound
	}
	u.Role = role
	return nil
}

func (r userRepo) MarkConfirmed(_ context.Context, id string) (bool, error) {
	u, ok := r.s.users[id]
	if !ok || u.Confirmed {
		return false, nil
	}
	u.Confirmed = true
	return true, nil
}

func (r subRepo) Create(_ context.Context, sub *entity.Subscription) error {
	if r.s.failSubscription != nil {
		return r.s.failSubscription
	}
	cp := *sub
	r.s.subs[sub.CompanyID] = &cp
	return nil
}

func (r subRepo) GetByCompany(_ context.Context, companyID string) (*entity.Subscription, error) {
	return r.s.subs[companyID], nil
}

func (r linkRepo) Create(_ context.Context, t *entity.MagicLinkToken) error {
	cp := *t
	r.s.links[t.TokenHash] = &cp
	return nil
}

// Consume replica el UPDATE condicional: no usado, no expirado, mismo email.
func (r linkRepo) Consume(_ context.Context, email, hash string, now time.Time) (bool, error) {
	t, ok := r.s.links[hash]
	if !ok || t.Email != email || t.UsedAt != nil || !now.Before(t.ExpiresAt) {
		return false, nil
	}
	used := now
	t.UsedAt = &used
	return true, nil
}

func (r linkRepo) DeleteStale(_ context.Context, email string, now time.Time) error {
	for h, t := range r.s.links {
		if t.Email == email && (t.UsedAt != nil || !now.Before(t.ExpiresAt)) {
			delete(r.s.links, h)
		}
	}
	return nil
}

func (r linkRepo) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for h, t := range r.s.links {
		if t.UsedAt != nil || !now.Before(t.ExpiresAt) {
			delete(r.s.links, h)
			n++
		}
	}
	return n, nil
}

// locked envuelve los repos para uso fuera de transacción.
type lockedUsers struct{ s *memStore }
type lockedMarkets struct{ s *memStore }
type lockedLinks struct{ s *memStore }

func (l lockedUsers) Create(ctx context.Context, u *entity.User) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return userRepo{l.s}.Create(ctx, u)
}
func (l lockedUsers) GetByID(ctx context.Context, id string) (*entity.User, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return userRepo{l.s}.GetByID(ctx, id)
}
func (l lockedUsers) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return userRepo{l.s}.GetByEmail(ctx, email)
}
func (l lockedUsers) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.User, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return userRepo{l.s}.ListByCompany(ctx, companyID, limit, offset)
}
func (l lockedUsers) UpdateRole(ctx context.Context, id, companyID string, role entity.Role) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return userRepo{l.s}.UpdateRole(ctx, id, companyID, role)
}
func (l lockedUsers) MarkConfirmed(ctx context.Context, id string) (bool, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return userRepo{l.s}.MarkConfirmed(ctx, id)
}

func (l lockedMarkets) Create(ctx context.Context, m *entity.Supermarket) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return marketRepo{l.s}.Create(ctx, m)
}
func (l lockedMarkets) GetByID(ctx context.Context, id string) (*entity.Supermarket, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return marketRepo{l.s}.GetByID(ctx, id)
}
func (l lockedMarkets) GetByTaxID(ctx context.Context, taxID string) (*entity.Supermarket, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return marketRepo{l.s}.GetByTaxID(ctx, taxID)
}
func (l lockedMarkets) List(ctx context.Context, limit, offset int) ([]*entity.Supermarket, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return marketRepo{l.s}.List(ctx, limit, offset)
}

func (l lockedLinks) Create(ctx context.Context, t *entity.MagicLinkToken) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return linkRepo{l.s}.Create(ctx, t)
}
func (l lockedLinks) Consume(ctx context.Context, email, hash string, now time.Time) (bool, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return linkRepo{l.s}.Consume(ctx, email, hash, now)
}
func (l lockedLinks) DeleteStale(ctx context.Context, email string, now time.Time) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return linkRepo{l.s}.DeleteStale(ctx, email, now)
}
func (l lockedLinks) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return linkRepo{l.s}.PurgeExpired(ctx, now)
}

// memTx trabaja sobre una copia y solo la publica si fn no falla (rollback = descartar copia).
type memTx struct{ s *memStore }

func (t memTx) RunRegistration(ctx context.Context, fn func(
	markets repository.SupermarketRepository,
	users repository.UserRepository,
	subs repository.SubscriptionRepository,
) error) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	work := t.s.clone()
	if err := fn(marketRepo{work}, userRepo{work}, subRepo{work}); err != nil {
		return err
	}
	t.s.markets, t.s.users, t.s.subs = work.markets, work.users, work.subs
	return nil
}

func (t memTx) RunLogin(ctx context.Context, fn func(
	links repository.MagicLinkRepository,
	users repository.UserRepository,
) error) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	work := t.s.clone()
	if err := fn(linkRepo{work}, t.users(work)); err != nil {
		return err
	}
	t.s.users, t.s.links = work.users, work.links
	return nil
}

// users devuelve el repo de usuarios de la copia, con el fallo inyectado si lo hay.
func (t memTx) users(work *memStore) repository.UserRepository {
	if t.s.failConfirm != nil {
		return failingConfirm{userRepo{work}, t.s.failConfirm}
	}
	return userRepo{work}
}

// failingConfirm simula un error transitorio al confirmar al usuario.
type failingConfirm struct {
	userRepo
	err error
}

func (f failingConfirm) MarkConfirmed(context.Context, string) (bool, error) { return false, f.err }

// ──────────────────────────────────────────────────────────────────────────────
// Colaboradores externos
// ──────────────────────────────────────────────────────────────────────────────

type sentMail struct{ To, Subject, Body string }

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to, subject, body})
	return nil
}

func (m *fakeMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

type denyAll struct{}

func (denyAll) Allow(context.Context, string) (bool, error) { return false, nil }

type brokenThrottle struct{}

func (brokenThrottle) Allow(context.Context, string) (bool, error) {
	return false, errors.New("redis caído")
}

// recordingIssuer guarda la última identidad firmada y delega en un emisor real.
type recordingIssuer struct {
	mu    sync.Mutex
	inner *jwt.Issuer
	last  jwt.Identity
}

func (r *recordingIssuer) Issue(id jwt.Identity) (string, error) {
	r.mu.Lock()
	r.last = id
	r.mu.Unlock()
	return r.inner.Issue(id)
}

// mockMailer permite fijar expectativas exactas sobre el envío.
type mockMailer struct{ mock.Mock }

func (m *mockMailer) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}
