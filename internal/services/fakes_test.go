package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/articled/apiserver/internal/store"
	"github.com/articled/apiserver/types"
)

// fakeArticleRepo is an in-memory ArticleRepository that records writes.
type fakeArticleRepo struct {
	mu       sync.Mutex
	nextID   int64
	articles map[int64]types.Article
	updates  int
	deletes  int
	err      error
}

func newFakeArticleRepo() *fakeArticleRepo {
	return &fakeArticleRepo{articles: map[int64]types.Article{}}
}

func (r *fakeArticleRepo) Create(_ context.Context, a types.Article) (types.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return types.Article{}, r.err
	}
	r.nextID++
	a.ID = r.nextID
	a.CreatedAt = time.Now().UTC()
	a.UpdatedAt = a.CreatedAt
	r.articles[a.ID] = a
	return a, nil
}

func (r *fakeArticleRepo) FindByID(_ context.Context, id int64) (types.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return types.Article{}, r.err
	}
	a, ok := r.articles[id]
	if !ok {
		return types.Article{}, store.ErrNotFound
	}
	return a, nil
}

func (r *fakeArticleRepo) FindManyByOwner(_ context.Context, ownerID int64) ([]types.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make([]types.Article, 0)
	for _, a := range r.articles {
		if a.OwnerID == ownerID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeArticleRepo) Update(_ context.Context, id int64, upd types.ArticleUpdate) (types.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates++
	a, ok := r.articles[id]
	if !ok {
		return types.Article{}, store.ErrNotFound
	}
	if upd.Title != nil {
		a.Title = *upd.Title
	}
	if upd.Slug != nil {
		a.Slug = *upd.Slug
	}
	if upd.Body != nil {
		a.Body = *upd.Body
	}
	a.UpdatedAt = time.Now().UTC()
	r.articles[id] = a
	return a, nil
}

func (r *fakeArticleRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deletes++
	if _, ok := r.articles[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.articles, id)
	return nil
}

type published struct {
	channel string
	event   types.ArticleEvent
	attrs   map[string]string
}

// fakePublisher collects published messages; err makes every publish fail.
type fakePublisher struct {
	mu       sync.Mutex
	messages []published
	decode   func([]byte) (types.ArticleEvent, error)
	err      error
}

func (p *fakePublisher) Publish(_ context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return "", p.err
	}
	event, err := p.decode(data)
	if err != nil {
		return "", err
	}
	p.messages = append(p.messages, published{channel: channel, event: event, attrs: attrs})
	return "msg-1", nil
}

var errBoom = errors.New("boom")

func strPtr(s string) *string { return &s }
