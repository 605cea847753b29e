// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package handler

import (
	"net/http"

	"BrewMasterAI/app/common/middleware"
	"BrewMasterAI/app/services/chat/internal/svc"

	"github.com/zeromicro/go-zero/rest"
)

func RegisterHandlers(server *rest.Server, serverCtx *svc.ServiceContext) {
	auth := middleware.NewOptionalAuthMiddleware(serverCtx.Config.JwtSecret)

	server.AddRoutes(
		rest.WithMiddlewares(
			[]rest.Middleware{auth.Handle},
			[]rest.Route{
				{
					Method:  http.MethodPost,
					Path:    "/api/v1/chat",
					Handler: ChatHandler(serverCtx),
				},
			}...,
		),
	)
}
