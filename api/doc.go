// Package api holds the HTTP handlers of the mp service and the routing
// that binds them to a Gin engine.
//
//	POST   /register          JSON {username, password}      -> 201 {username}
//	POST   /login             form {username, password}      -> 200 {access_token, token_type}
//	GET    /users/me          bearer                          -> 200 {username}
//	POST   /items[/]          bearer, JSON CreateInput        -> 200 Item
//	GET    /items[/]          bearer, search/sort/page query  -> 200 list
//	GET    /items/:id         bearer                          -> 200 Item | 404
//	PUT    /items/:id         bearer, partial JSON            -> 200 Item | 404
//	DELETE /items/:id         bearer                          -> 200 {ok: true} | 404
//	POST   /tasks/:name       bearer                          -> 202 {task_id, task, status}
//	GET    /tasks/result/:id  bearer                          -> 200 result
//	GET    /                                                  -> 200 welcome message
package api
