package handler

import (
	"chatrelay/internal/app/chat"
	"chatrelay/internal/app/storage"
	"chatrelay/internal/configs"
)

// AppDeps bundles the collaborators every HTTP handler may need.
type AppDeps struct {
	Hub            *chat.Hub
	Config         *configs.AppConfig
	StorageService storage.Service
}
