// Package api assembles the HTTP server: routing, the authentication
// guard, and the middleware chain around the account and todo handlers.
//
// # Endpoints
//
//	POST   /users           signup (public)
//	POST   /users/login     login (public)
//	GET    /users/me        current user
//	DELETE /users/me/token  logout (revokes the presented token)
//	POST   /todos           create todo
//	GET    /todos           list owned todos
//	GET    /todos/{id}      get owned todo
//	DELETE /todos/{id}      delete owned todo
//	PATCH  /todos/{id}      partial update through the field whitelist
//	GET    /healthz         liveness probe (public)
//	GET    /readyz          readiness probe (public)
//	GET    /metrics         Prometheus metrics (public)
//
// Signup and login respond with a session token in the x-auth header;
// every protected endpoint expects that header back.
package api
