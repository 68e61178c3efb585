package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/damascus-edu/training-center-bot/internal/adapter/metagraph"
	"github.com/damascus-edu/training-center-bot/internal/model"
	"github.com/damascus-edu/training-center-bot/internal/service"
	"go.uber.org/zap"
)

// slowPublisher блокируется внутри публикации, пока тест не разрешит продолжить
type slowPublisher struct {
	entered chan struct{}
	release chan struct{}
	calls   atomic.Int32
}

func newSlowPublisher() *slowPublisher {
	return &slowPublisher{
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
}

func (p *slowPublisher) PublishToFacebook(_ context.Context, _, _ string) *metagraph.PublishResult {
	p.calls.Add(1)
	select {
	case p.entered <- struct{}{}:
	default:
	}
	<-p.release
	return &metagraph.PublishResult{Success: true, PostID: "fb_1"}
}

func (p *slowPublisher) PublishToInstagram(_ context.Context, _, _ string) *metagraph.PublishResult {
	return &metagraph.PublishResult{Success: true, PostID: "ig_1"}
}

type memoryPostStore struct {
	mu    sync.Mutex
	posts map[string]*model.ScheduledPost
}

func newMemoryPostStore(posts ...*model.ScheduledPost) *memoryPostStore {
	s := &memoryPostStore{posts: map[string]*model.ScheduledPost{}}
	for _, p := range posts {
		s.posts[p.ID] = p
	}
	return s
}

func (s *memoryPostStore) GetPending(_ context.Context) ([]*model.ScheduledPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.ScheduledPost
	for _, p := range s.posts {
		if p.Status == model.PostStatusPending {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memoryPostStore) Save(_ context.Context, post *model.ScheduledPost) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts[post.ID] = post
	return nil
}

// Ручной запуск во время идущей проверки не должен опубликовать
// тот же pending-пост второй раз.
func TestTriggerNowWhileCheckRunning(t *testing.T) {
	post := model.NewScheduledPost("content", time.Now().Add(-time.Minute), model.PlatformFacebook, "", 0)
	publisher := newSlowPublisher()
	store := newMemoryPostStore(post)

	postService := service.NewPostService(nil, publisher, store, zap.NewNop())
	scheduler := NewPostScheduler(postService, time.Hour, zap.NewNop(), nil)

	ctx := context.Background()
	done := make(chan struct{})
	var published int
	var firstErr error
	go func() {
		published, firstErr = scheduler.TriggerNow(ctx)
		close(done)
	}()

	select {
	case <-publisher.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("publisher was never called")
	}

	if _, err := scheduler.TriggerNow(ctx); !errors.Is(err, ErrCheckInProgress) {
		t.Fatalf("expected ErrCheckInProgress for overlapping trigger, got %v", err)
	}

	close(publisher.release)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("first trigger never finished")
	}

	if firstErr != nil {
		t.Fatalf("first trigger failed: %v", firstErr)
	}
	if published != 1 {
		t.Fatalf("expected 1 published post, got %d", published)
	}
	if got := publisher.calls.Load(); got != 1 {
		t.Fatalf("post was published %d times, want 1", got)
	}
}

// После завершения проверки повторный ручной запуск снова работает
func TestTriggerNowAfterCheckFinished(t *testing.T) {
	post := model.NewScheduledPost("content", time.Now().Add(-time.Minute), model.PlatformFacebook, "", 0)
	publisher := newSlowPublisher()
	close(publisher.release)
	store := newMemoryPostStore(post)

	postService := service.NewPostService(nil, publisher, store, zap.NewNop())
	scheduler := NewPostScheduler(postService, time.Hour, zap.NewNop(), nil)

	ctx := context.Background()
	published, err := scheduler.TriggerNow(ctx)
	if err != nil {
		t.Fatalf("first trigger failed: %v", err)
	}
	if published != 1 {
		t.Fatalf("expected 1 published post, got %d", published)
	}

	published, err = scheduler.TriggerNow(ctx)
	if err != nil {
		t.Fatalf("second trigger failed: %v", err)
	}
	if published != 0 {
		t.Fatalf("expected no posts on second trigger, got %d", published)
	}
}
