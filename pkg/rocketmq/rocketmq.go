package rocketmq

import (
	"NoteShare/config"
	"NoteShare/pkg/log"
	"context"
	"fmt"

	"github.com/apache/rocketmq-client-go/v2"
	"github.com/apache/rocketmq-client-go/v2/primitive"
	"github.com/apache/rocketmq-client-go/v2/producer"
	"github.com/apache/rocketmq-client-go/v2/rlog"
	"go.uber.org/zap"
)

type Rocketmq struct {
	RocketmqProducer rocketmq.Producer
}

func init() {
	rlog.SetLogLevel("error")
}

// InitProducer 未启用时返回 nil，调用方按空生产者处理
func InitProducer(cfg *config.RocketMQConfig) (*Rocketmq, func(), error) {
	if !cfg.Enabled {
		return nil, func() {}, nil
	}
	retry := cfg.Producer.Retry
	if retry <= 0 {
		retry = 2
	}
	p, err := rocketmq.NewProducer(
		producer.WithNameServer(cfg.NameServer),
		producer.WithGroupName(cfg.Producer.Group),
		producer.WithRetry(retry),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("new rocketmq producer: %w", err)
	}
	if err = p.Start(); err != nil {
		return nil, nil, fmt.Errorf("start rocketmq producer: %w", err)
	}
	log.L.Info("init producer success", zap.Strings("nameserver", cfg.NameServer))

	cleanup := func() {
		if err := p.Shutdown(); err != nil {
			log.L.Warn("shutdown rocketmq producer", zap.Error(err))
		}
	}
	return &Rocketmq{RocketmqProducer: p}, cleanup, nil
}

func (p *Rocketmq) SendMsg(ctx context.Context, topic string, body []byte) error {
	msg := primitive.NewMessage(topic, body)

	// 发送同步消息
	res, err := p.RocketmqProducer.SendSync(ctx, msg)
	if err != nil {
		return err
	}
	log.L.Debug("send message success", zap.String("msg_id", res.MsgID))
	return nil
}
