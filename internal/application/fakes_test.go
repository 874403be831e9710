package application

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/eazydocs/eazydocs-backend/internal/domain/entity"
)

var errFakeNotFound = errors.New("not found")

// fakeUserRepo is an in-memory UserRepository keyed by email.
type fakeUserRepo struct {
	users    map[string]*entity.User // email -> user
	nextID   int
	verified map[string]bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}, verified: map[string]bool{}}
}

func (r *fakeUserRepo) add(u *entity.User) *entity.User {
	if u.ID == "" {
		r.nextID++
		u.ID = "u" + strconv.Itoa(r.nextID)
	}
	r.users[u.Email] = u
	return u
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	u.CreatedAt = time.Now()
	r.add(u)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, errFakeNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	if u, ok := r.users[email]; ok {
		return u, nil
	}
	return nil, errFakeNotFound
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, errFakeNotFound
}

func (r *fakeUserRepo) GetAll(_ context.Context) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	if _, ok := r.users[u.Email]; !ok {
		return errFakeNotFound
	}
	r.users[u.Email] = u
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	for email, u := range r.users {
		if u.ID == id {
			delete(r.users, email)
			return nil
		}
	}
	return errFakeNotFound
}

func (r *fakeUserRepo) UsernameExists(_ context.Context, username string) (bool, error) {
	for _, u := range r.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) SetVerified(_ context.Context, email string) error {
	u, ok := r.users[email]
	if !ok {
		return errFakeNotFound
	}
	u.Verified = true
	r.verified[email] = true
	return nil
}

func (r *fakeUserRepo) SetPassword(_ context.Context, id, passwordHash string) error {
	for _, u := range r.users {
		if u.ID == id {
			u.Password = passwordHash
			return nil
		}
	}
	return errFakeNotFound
}

// fakeProvider records calls and answers from canned credentials.
type fakeProvider struct {
	signUpCalls   int
	signInCalls   []string // emails passed to SignInWithPassword
	updateCalls   []string
	deleteCalls   []string
	validPassword string
	signUpErr     error
	deleteErr     error
}

func (p *fakeProvider) SignUp(_ context.Context, email, _ string) (string, error) {
	p.signUpCalls++
	if p.signUpErr != nil {
		return "", p.signUpErr
	}
	return "prov-" + email, nil
}

func (p *fakeProvider) SignInWithPassword(_ context.Context, email, password string) error {
	p.signInCalls = append(p.signInCalls, email)
	if p.validPassword != "" && password != p.validPassword {
		return errors.New("invalid login credentials")
	}
	return nil
}

func (p *fakeProvider) UpdatePassword(_ context.Context, providerID, _ string) error {
	p.updateCalls = append(p.updateCalls, providerID)
	return nil
}

func (p *fakeProvider) DeleteUser(_ context.Context, providerID string) error {
	p.deleteCalls = append(p.deleteCalls, providerID)
	return p.deleteErr
}

// fakeCodeStore is an in-memory CodeStore with manual expiry control.
type fakeCodeStore struct {
	codes   map[string]string
	expires map[string]time.Time
	now     time.Time
}

func newFakeCodeStore() *fakeCodeStore {
	return &fakeCodeStore{codes: map[string]string{}, expires: map[string]time.Time{}, now: time.Now()}
}

func (s *fakeCodeStore) Set(_ context.Context, email, code string, ttl time.Duration) error {
	s.codes[email] = code
	s.expires[email] = s.now.Add(ttl)
	return nil
}

func (s *fakeCodeStore) Get(_ context.Context, email string) (string, bool, error) {
	code, ok := s.codes[email]
	if !ok || s.now.After(s.expires[email]) {
		return "", false, nil
	}
	return code, true, nil
}

func (s *fakeCodeStore) Delete(_ context.Context, email string) error {
	delete(s.codes, email)
	delete(s.expires, email)
	return nil
}

// fakeMailer captures sent mail and can simulate delivery failure.
type fakeMailer struct {
	sent    []string // recipients
	lastTxt string
	fail    bool
}

func (m *fakeMailer) Send(_ context.Context, to, _, text, _ string) error {
	if m.fail {
		return errors.New("mailgun rejected")
	}
	m.sent = append(m.sent, to)
	m.lastTxt = text
	return nil
}

// fakeBlogRepo is an in-memory BlogRepository.
type fakeBlogRepo struct {
	blogs     map[string]*entity.BlogPost
	userBlogs map[string][]string
	nextID    int
	banners   map[string]string
}

func newFakeBlogRepo() *fakeBlogRepo {
	return &fakeBlogRepo{blogs: map[string]*entity.BlogPost{}, userBlogs: map[string][]string{}, banners: map[string]string{}}
}

func (r *fakeBlogRepo) Create(_ context.Context, b *entity.BlogPost) ([]string, error) {
	r.nextID++
	b.ID = "b" + strconv.Itoa(r.nextID)
	b.CreatedAt = time.Now()
	r.blogs[b.ID] = b
	r.userBlogs[b.Author] = append(r.userBlogs[b.Author], b.ID)
	return r.userBlogs[b.Author], nil
}

func (r *fakeBlogRepo) GetByID(_ context.Context, id string) (*entity.BlogPost, error) {
	if b, ok := r.blogs[id]; ok {
		return b, nil
	}
	return nil, errFakeNotFound
}

func (r *fakeBlogRepo) GetAll(_ context.Context) ([]*entity.BlogWithAuthor, error) {
	out := []*entity.BlogWithAuthor{}
	for _, b := range r.blogs {
		out = append(out, &entity.BlogWithAuthor{BlogPost: *b})
	}
	return out, nil
}

func (r *fakeBlogRepo) GetByAuthor(_ context.Context, authorID string) ([]*entity.BlogWithAuthor, error) {
	out := []*entity.BlogWithAuthor{}
	for _, b := range r.blogs {
		if b.Author == authorID {
			out = append(out, &entity.BlogWithAuthor{BlogPost: *b})
		}
	}
	return out, nil
}

func (r *fakeBlogRepo) Search(_ context.Context, _ string, limit int) ([]*entity.BlogWithAuthor, error) {
	all, err := r.GetAll(context.Background())
	if err != nil {
		return nil, err
	}
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakeBlogRepo) SetBannerImage(_ context.Context, id, url string) error {
	b, ok := r.blogs[id]
	if !ok {
		return errFakeNotFound
	}
	b.BannerImage = url
	r.banners[id] = url
	return nil
}

func (r *fakeBlogRepo) Delete(_ context.Context, id string) error {
	b, ok := r.blogs[id]
	if !ok {
		return errFakeNotFound
	}
	delete(r.blogs, id)
	ids := r.userBlogs[b.Author]
	for i, v := range ids {
		if v == id {
			r.userBlogs[b.Author] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}
