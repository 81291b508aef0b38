package common

// AuthorizationHeaderName carries "Bearer <token>" on outbound requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token in the Authorization header.
const BearerPrefix = "Bearer "

// LocalTokenPrefix marks access tokens synthesized on the device.
const LocalTokenPrefix = "local-token-"
