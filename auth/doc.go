// Package auth implements registration, login and bearer-token
// authorization.
//
// Subpackages hold the building blocks:
//
//   - auth/credential: username to password-hash store
//   - auth/password:   salted password hashing (bcrypt, argon2id)
//   - auth/jwt:        signed, time-limited tokens carrying a subject
//   - auth/authctx:    the authenticated principal in a request context
//
// This package composes them. Service enrolls and authenticates
// principals; Authorizer turns a bearer token into the current principal
// and is the single gate protected operations go through.
//
//	auth:
//	  jwt:
//	    secret: "change-me"
//	    access_token_ttl: "30m"
//	  password:
//	    algorithm: "bcrypt"
//	    bcrypt_cost: 12
package auth
