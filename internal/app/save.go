package app

import (
	"context"
	"fmt"

	"github.com/graaaaa/vrcvisits/internal/appinfo"
	"github.com/graaaaa/vrcvisits/internal/shortcut"
	"github.com/graaaaa/vrcvisits/internal/singleinstance"
	"github.com/graaaaa/vrcvisits/internal/visit"
)

// SaveUsecase quick-saves a visit as a shortcut.
type SaveUsecase interface {
	Save(ctx context.Context, v visit.Visit, variant shortcut.Variant) (shortcut.Action, error)
}

// ShortcutSaver writes shortcuts into the save directory.
type ShortcutSaver interface {
	Save(v visit.Visit, variant shortcut.Variant) (shortcut.Action, error)
}

// SaveService implements SaveUsecase. It holds the single-instance lock for
// the duration of each save.
type SaveService struct {
	saver    ShortcutSaver
	lockName string
	acquire  func(name string) (*singleinstance.Lock, error)
}

// NewSaveService creates a SaveService guarded by the application mutex.
func NewSaveService(saver ShortcutSaver) *SaveService {
	return &SaveService{
		saver:    saver,
		lockName: appinfo.MutexName,
		acquire:  singleinstance.Acquire,
	}
}

// Save resolves and executes the quick save for v.
func (s *SaveService) Save(ctx context.Context, v visit.Visit, variant shortcut.Variant) (shortcut.Action, error) {
	if err := ctx.Err(); err != nil {
		return shortcut.Action{}, err
	}
	lock, err := s.acquire(s.lockName)
	if err != nil {
		return shortcut.Action{}, fmt.Errorf("quick save: %w", err)
	}
	defer lock.Release()

	return s.saver.Save(v, variant)
}
