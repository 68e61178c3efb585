package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/damascus-edu/training-center-bot/internal/service"
	"go.uber.org/zap"
)

// ErrCheckInProgress возвращается, когда предыдущий цикл проверки
// ещё публикует посты
var ErrCheckInProgress = errors.New("post check already in progress")

// PostScheduler управляет фоновой проверкой запланированных постов
type PostScheduler struct {
	postService *service.PostService
	interval    time.Duration
	logger      *zap.Logger
	onError     func(ctx context.Context, message string)
	onTick      func(ctx context.Context)
	stopChan    chan struct{}

	// Защита от наложения: если прошлая проверка ещё публикует,
	// очередной тик пропускается
	running sync.Mutex
}

// NewPostScheduler создаёт новый планировщик.
// onError — колбэк для уведомления администратора об ошибках, может быть nil.
func NewPostScheduler(postService *service.PostService, interval time.Duration, logger *zap.Logger, onError func(ctx context.Context, message string)) *PostScheduler {
	return &PostScheduler{
		postService: postService,
		interval:    interval,
		logger:      logger,
		onError:     onError,
		stopChan:    make(chan struct{}),
	}
}

// SetTickTask добавляет дополнительную задачу, выполняемую каждый цикл
// (напоминания о начале курсов). Вызывается до Start.
func (s *PostScheduler) SetTickTask(task func(ctx context.Context)) {
	s.onTick = task
}

// Start запускает фоновую проверку постов
func (s *PostScheduler) Start(ctx context.Context) {
	s.logger.Info("Starting post scheduler",
		zap.Duration("interval", s.interval))

	go s.runCheckTask(ctx)
}

// Stop останавливает фоновые задачи
func (s *PostScheduler) Stop() {
	s.logger.Info("Stopping post scheduler")
	close(s.stopChan)
}

// runCheckTask периодически проверяет и публикует посты
func (s *PostScheduler) runCheckTask(ctx context.Context) {
	// Первый запуск сразу при старте
	s.checkPosts(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.checkPosts(ctx)
		case <-s.stopChan:
			s.logger.Info("Post check task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Post check task cancelled")
			return
		}
	}
}

// checkPosts выполняет один цикл проверки. Ошибки логируются и отправляются
// администратору, но не останавливают планировщик.
func (s *PostScheduler) checkPosts(ctx context.Context) {
	published, err := s.TriggerNow(ctx)
	if errors.Is(err, ErrCheckInProgress) {
		s.logger.Warn("Previous post check still running, skipping this tick")
		return
	}
	if err != nil {
		s.logger.Error("Post check failed", zap.Error(err))
		if s.onError != nil {
			s.onError(ctx, "Scheduler error: "+err.Error())
		}
	} else if published > 0 {
		s.logger.Info("Post check completed", zap.Int("published", published))
	}

	if s.onTick != nil {
		s.onTick(ctx)
	}
}

// TriggerNow запускает проверку вне очереди (для админ-команды).
// Цикл и ручной запуск делят один мьютекс, поэтому пост не может
// быть опубликован дважды наложившимися проверками.
func (s *PostScheduler) TriggerNow(ctx context.Context) (int, error) {
	if !s.running.TryLock() {
		return 0, ErrCheckInProgress
	}
	defer s.running.Unlock()

	return s.postService.CheckAndPublish(ctx)
}
