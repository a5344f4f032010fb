package service

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewStorage,

	wire.Struct(new(EventPublisher), "*"),
	wire.Bind(new(IEventPublisher), new(*EventPublisher)),

	wire.Struct(new(AuthService), "*"),
	wire.Bind(new(IAuthService), new(*AuthService)),

	wire.Struct(new(NoteService), "*"),
	wire.Bind(new(INoteService), new(*NoteService)),

	wire.Struct(new(ModerationService), "*"),
	wire.Bind(new(IModerationService), new(*ModerationService)),

	wire.Struct(new(SweepService), "*"),
	wire.Bind(new(ISweepService), new(*SweepService)),
)
