// Package server runs the gin engine that exposes the control plane of a
// running batch. It is only started when Server.ControlPlane is set and is
// stopped once the batch is over.
//
// # Routes and Middleware
//
//	gin.Engine
//	 ├─ middlewares.Logger          one zap line per request
//	 ├─ ginzap.RecoveryWithZap      panics become 500, stack is logged
//	 ├─ GET /health                 no authentication
//	 └─ /api/v1 group
//	     ├─ middlewares.Authenticator   only when Auth.Enabled
//	     └─ routes added by the registerHandlerFn callback
//
// ServerMode selects the gin mode: "dev" runs gin in debug mode, "prod" in
// release mode. Any other value makes NewServer fail.
//
// # Lifecycle
//
//	srv, err := server.NewServer(cfg, func(router *gin.RouterGroup) {
//	    v1.RegisterHandlers(router, handlers.New(runner, history))
//	})
//	go srv.Start(ctx) // returns nil after Stop
//	...
//	srv.Stop(shutdownCtx)
//
// # Authentication
//
// The Authenticator reads "Authorization: Bearer <token>". The token must be
// signed with HS256 using Auth.Secret and carry an exp claim; anything else
// is answered with 401 and {"error": "invalid token: <reason>"}.
package server
