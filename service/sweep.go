package service

import (
	"NoteShare/config"
	"NoteShare/dao"
	"NoteShare/pkg/log"
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

const sweepWorkers = 4

var _ ISweepService = (*SweepService)(nil)

type ISweepService interface {
	// Sweep 删除没有被任何笔记引用、且早于 grace 的文件，返回删除数量
	Sweep(ctx context.Context, grace time.Duration) (int, error)
	// Run 按 storage.sweep_interval 定时清理，直到 ctx 结束
	Run(ctx context.Context) error
}

type SweepService struct {
	Config  *config.Config
	NoteDAO *dao.NoteDAO
	Storage IStorage
}

func (s *SweepService) Sweep(ctx context.Context, grace time.Duration) (int, error) {
	lister, ok := s.Storage.(Lister)
	if !ok {
		return 0, ErrListUnsupported
	}
	blobs, err := lister.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list files: %w", err)
	}

	cutoff := time.Now().Add(-grace)
	candidates := make([]string, 0, len(blobs))
	for _, b := range blobs {
		if b.ModTime.Before(cutoff) {
			candidates = append(candidates, b.Key)
		}
	}
	if len(candidates) == 0 {
		return 0, nil
	}

	referenced, err := s.NoteDAO.ReferencedPaths(ctx, candidates)
	if err != nil {
		return 0, fmt.Errorf("load referenced paths: %w", err)
	}

	var removed atomic.Int64
	p := pool.New().WithMaxGoroutines(sweepWorkers).WithErrors()
	for _, key := range candidates {
		if _, ok := referenced[key]; ok {
			continue
		}
		p.Go(func() error {
			if err := s.Storage.Delete(ctx, key); err != nil {
				return fmt.Errorf("remove %s: %w", key, err)
			}
			removed.Add(1)
			log.L.Info("orphan file removed", zap.String("key", key))
			return nil
		})
	}
	err = p.Wait()
	n := int(removed.Load())
	sweepRemovedTotal.Add(float64(n))
	return n, err
}

func (s *SweepService) Run(ctx context.Context) error {
	interval := s.Config.Storage.SweepInterval
	if interval <= 0 {
		<-ctx.Done()
		return nil
	}
	if _, ok := s.Storage.(Lister); !ok {
		log.L.Warn("sweep disabled, storage backend cannot list files",
			zap.String("backend", s.Config.Storage.Backend))
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			n, err := s.Sweep(ctx, s.Config.Storage.SweepGrace)
			if err != nil {
				log.L.Error("sweep orphan files", zap.Error(err))
				continue
			}
			if n > 0 {
				log.L.Info("sweep finished", zap.Int("removed", n))
			}
		}
	}
}
