// Package handler provides the HTTP surface of the Holocron API.
//
// Each handler wraps a small service interface so tests can substitute
// function-field mocks. NewRouter wires every route onto a net/http ServeMux
// using method-qualified patterns.
//
// # Routes
//
//	GET    /health
//	GET    /planets | /characters | /vehicles
//	GET    /planets/{id} | /characters/{id} | /vehicles/{id}
//	POST   /planets | /characters | /vehicles          (current user)
//	DELETE /planets/{id} | /characters/{id} | /vehicles/{id}  (current user)
//	GET    /users
//	DELETE /users/{id}                                  (current user)
//	GET    /users/{id}/favorites
//	GET    /users/{id}/favorites/{kind}
//	POST   /favorite/{kind}/{id}                        (current user)
//	DELETE /favorite/{kind}/{id}                        (current user)
//	POST   /signup
//	POST   /login
//
// # Errors
//
// Every failure is written as a model.APIError body. MapServiceError holds the
// single table from service sentinels to status codes; anything unmapped
// becomes a 500 and is logged with the request id.
package handler
