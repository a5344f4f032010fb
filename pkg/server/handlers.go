package server

import (
	"NoteShare/handler"
)

type Handlers struct {
	Auth   *handler.Auth
	Note   *handler.Note
	Admin  *handler.Admin
	Health *handler.Health
}
