package service

import (
	"NoteShare/dao"
	"NoteShare/dao/cache"
	"NoteShare/pkg/log"
	"NoteShare/types"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var _ IModerationService = (*ModerationService)(nil)

type IModerationService interface {
	// Approve 审核通过，重复审核视为成功
	Approve(ctx context.Context, actorID, noteID uint64) (*types.NoteItem, error)
	// Reject 驳回并删除待审核笔记，已通过的笔记不能驳回
	Reject(ctx context.Context, actorID, noteID uint64) error
}

type ModerationService struct {
	NoteDAO    *dao.NoteDAO
	Storage    IStorage
	FacetCache *cache.FacetStorage
	Publisher  IEventPublisher
}

func (s *ModerationService) Approve(ctx context.Context, actorID, noteID uint64) (*types.NoteItem, error) {
	note, err := s.NoteDAO.Approve(ctx, noteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("approve note: %w", err)
	}
	moderationTotal.WithLabelValues("approve").Inc()

	if err := s.FacetCache.Invalidate(ctx); err != nil {
		log.L.Warn("invalidate facet cache", zap.Error(err))
	}
	log.L.Info("note approved", zap.Uint64("note_id", noteID), zap.Uint64("actor_id", actorID))
	s.Publisher.Publish(ctx, &NoteEvent{
		Event:      EventNoteApproved,
		NoteID:     note.ID,
		UploaderID: note.UploaderID,
		ActorID:    actorID,
		At:         now(),
	})
	return toNoteItem(note), nil
}

func (s *ModerationService) Reject(ctx context.Context, actorID, noteID uint64) error {
	note, err := s.NoteDAO.DeletePending(ctx, noteID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNoteNotFound
	case errors.Is(err, dao.ErrNoteApproved):
		return ErrNoteAlreadyApproved
	case err != nil:
		return fmt.Errorf("delete note: %w", err)
	}
	moderationTotal.WithLabelValues("reject").Inc()

	// 行已删除，文件删除失败留给清理任务
	if err := s.Storage.Delete(context.WithoutCancel(ctx), note.FilePath); err != nil {
		log.L.Error("remove rejected note file",
			zap.Uint64("note_id", noteID),
			zap.String("key", note.FilePath),
			zap.Error(err),
		)
	}
	log.L.Info("note rejected", zap.Uint64("note_id", noteID), zap.Uint64("actor_id", actorID))
	s.Publisher.Publish(ctx, &NoteEvent{
		Event:      EventNoteRejected,
		NoteID:     note.ID,
		UploaderID: note.UploaderID,
		ActorID:    actorID,
		At:         now(),
	})
	return nil
}
