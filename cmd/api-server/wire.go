//go:build wireinject
// +build wireinject

package main

import (
	"NoteShare/config"
	"NoteShare/dao"
	"NoteShare/dao/cache"
	"NoteShare/handler"
	"NoteShare/pkg/client"
	"NoteShare/pkg/database"
	"NoteShare/pkg/rocketmq"
	"NoteShare/pkg/server"
	"NoteShare/service"

	"github.com/google/wire"
)

func InitServer(cfg *config.Config) (*server.AppProvider, func(), error) {
	wire.Build(
		database.NewDB,
		client.NewRedisClient,
		config.ProvideStorageConfig,
		config.ProvideOssConfig,
		config.ProvideRocketMQConfig,
		rocketmq.InitProducer,
		server.NewGinEngine,
		cache.ProviderSet,
		wire.Struct(new(handler.Auth), "*"),
		wire.Struct(new(handler.Note), "*"),
		wire.Struct(new(handler.Admin), "*"),
		wire.Struct(new(handler.Health), "*"),

		wire.Struct(new(server.AppProvider), "*"),
		wire.Struct(new(server.Handlers), "*"),

		dao.ProviderSet,

		service.ProviderSet,
	)
	return nil, nil, nil
}

// InitSweeper 只依赖数据库和文件存储
func InitSweeper(cfg *config.Config) (service.ISweepService, func(), error) {
	wire.Build(
		database.NewDB,
		config.ProvideStorageConfig,
		config.ProvideOssConfig,
		dao.NewNoteDAO,
		service.NewStorage,
		wire.Struct(new(service.SweepService), "*"),
		wire.Bind(new(service.ISweepService), new(*service.SweepService)),
	)
	return nil, nil, nil
}
