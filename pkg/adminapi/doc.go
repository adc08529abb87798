/*
Package adminapi implements a client for a Keycloak-compatible identity
administration REST API.

# Overview

The package is organized around a single type:

  - Client: performs authenticated admin REST calls against one server

A Client authenticates against a token endpoint (password or client
credentials grant) and then issues admin requests with automatic access
token refresh:

	admin := adminapi.New("https://id.example.com")
	if err := admin.LoginAdmin(ctx, "master", "admin", "changeme"); err != nil {
		log.Fatal(err)
	}

	realms, err := admin.Realms(ctx)

# Token Refresh

Access tokens are refreshed transparently. Every request obtains a valid
token first, refreshing with the stored refresh token (or re-running the
client credentials grant) when the current token is within 30 seconds of
expiry. Multiple goroutines can share one Client.

# Errors

Non-2xx responses are returned as *APIError carrying the HTTP status code
and the server's error message. Creation helpers enforce the 201 Created
contract via EnsureCreated and recover the new entity's identifier from
the Location header via ExtractID.

# Rate Limiting

An optional golang.org/x/time/rate limiter can be attached to a Client to
keep bulk provisioning runs from hammering the admin endpoints:

	admin.Limiter = rate.NewLimiter(rate.Every(50*time.Millisecond), 10)
*/
package adminapi
