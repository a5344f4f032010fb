package service

import (
	"NoteShare/config"
	"NoteShare/pkg/log"
	"NoteShare/pkg/rocketmq"
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

const (
	EventNoteUploaded = "note.uploaded"
	EventNoteApproved = "note.approved"
	EventNoteRejected = "note.rejected"
)

// NoteEvent 审核流水
type NoteEvent struct {
	Event      string    `json:"event"`
	NoteID     uint64    `json:"note_id"`
	UploaderID uint64    `json:"uploader_id"`
	ActorID    uint64    `json:"actor_id"`
	At         time.Time `json:"at"`
}

var _ IEventPublisher = (*EventPublisher)(nil)

type IEventPublisher interface {
	Publish(ctx context.Context, ev *NoteEvent)
}

// EventPublisher 未启用 rocketmq 时 Producer 为 nil，只丢弃
type EventPublisher struct {
	Producer *rocketmq.Rocketmq
	Config   *config.RocketMQConfig
}

// Publish 发送失败只记日志，不影响业务请求
func (p *EventPublisher) Publish(ctx context.Context, ev *NoteEvent) {
	if p.Producer == nil {
		return
	}
	body, err := json.Marshal(ev)
	if err != nil {
		log.L.Warn("marshal note event", zap.Error(err))
		return
	}
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()
	if err := p.Producer.SendMsg(sendCtx, p.Config.Topic, body); err != nil {
		log.L.Warn("publish note event",
			zap.String("event", ev.Event),
			zap.Uint64("note_id", ev.NoteID),
			zap.Error(err),
		)
	}
}
