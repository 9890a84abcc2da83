/*
Package authsdk provides a client SDK for the client authentication service.

# SDKClient vs Session

The package is organized around two main types:

  - SDKClient: registration, login, refresh, the Google bridge and health checks
  - Session: operations that need a logged in client

Create an SDKClient and log in to get a Session:

	client := authsdk.NewSDKClient("https://auth.example.com")

	_, err := client.Register(ctx, authsdk.RegisterRequest{
		Name:     "Ann",
		Email:    "ann@example.com",
		Password: "correct horse battery staple",
	})

	session, err := client.Login(ctx, "ann@example.com", "correct horse battery staple")

# Refresh Tokens

Every login and every refresh issues a new refresh token and invalidates the
previous one. Only the newest refresh token of a client is accepted:

	if err := session.Refresh(ctx); err != nil {
		// errors.Is(err, authsdk.ErrUnauthorized) when the token was used
		// already or the client logged out
	}

# Errors

Failed requests return an *APIError carrying the HTTP status and the
message from the response envelope. Compare with the sentinels:

	if errors.Is(err, authsdk.ErrConflict) {
		// email already registered
	}
*/
package authsdk
