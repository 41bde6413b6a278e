package common

// AuthorizationHeader is the HTTP header that carries the bearer credential.
const AuthorizationHeader = "Authorization"

// BearerPrefix is the literal scheme prefix the server accepts.
// Case-sensitive, exactly one space.
const BearerPrefix = "Bearer "
