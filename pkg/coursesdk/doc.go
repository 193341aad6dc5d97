/*
Package coursesdk provides a client SDK for the Short-Term Course platform API.

# Overview

The coursesdk package implements the single network egress point for the
short-course enrollment platform: public catalog browsing, authentication,
self-service enrollment and the admin back office all go through one Client.
The Client enforces the platform's authentication contract uniformly so that
calling code never handles tokens directly.

# Client and the middleware pipeline

Every call passes through an explicit pipeline of request stages and response
stages:

	client := coursesdk.NewClient("http://localhost:8080/short-term-course",
		coursesdk.WithTokenSource(tokens),
		coursesdk.WithNavigator(nav),
	)

	cats, err := client.ListCategories(ctx, coursesdk.ListQuery{Size: 100})

Request stages stamp a correlation ID, apply the politeness rate limit and
attach the bearer token when one is stored. The auth response stage implements
the refresh contract:

 1. On the first 401 for a request, POST /auth/refresh-token with the stored
    refresh token.
 2. On success, persist the new token pair, rewrite the Authorization header
    and resend the original request exactly once. The retried outcome is what
    the caller observes.
 3. On refresh failure, the session is cleared, the Navigator is told to send
    the user to the login entry point, and the caller receives the refresh
    error wrapped as *AuthError.

A 401 on the retried request is surfaced directly, guaranteeing at most one
refresh attempt per original request. Concurrent refreshes are coalesced: the
first request through the lock refreshes, the rest reuse whichever pair won.

# Error taxonomy

Failures surface as one of three types, matchable with errors.As:

  - *NetworkError: the request never reached the server or got no response
  - *AuthError: a 401 that could not be resolved by refresh, or the refresh
    call itself failed
  - *APIError: a non-401 error status, carrying the server message and code

# Token sources and navigation

The Client reads credentials through the TokenSource interface and signals
forced navigation through the Navigator interface. Both are implemented by
the session manager in this repository, but any implementation works, which
keeps the pipeline testable without persisted state.
*/
package coursesdk
