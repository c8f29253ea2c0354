package handler

import (
	"chatapp/internal/app/account"
	"chatapp/internal/app/chat"
	"chatapp/internal/app/presence"
	"chatapp/internal/app/session"
	"chatapp/internal/configs"
)

// AppDeps bundles the constructed services the handlers work against.
type AppDeps struct {
	Config    *configs.AppConfig
	Directory *session.Directory
	Accounts  *account.Service
	Chat      *chat.Service
	Presence  *presence.Machine
}
