package http

import "net/http"

// Code pairs an HTTP status with a default message.
type Code struct {
	Status int
	Msg    string
}

func failed(status int, msg string) Code {
	return Code{Status: status, Msg: msg}
}

var (
	BadRequest    = failed(http.StatusBadRequest, "bad request")
	InvalidPath   = failed(http.StatusBadRequest, "invalid path")
	FileTooLarge  = failed(http.StatusBadRequest, "file exceeds size limit")
	InvalidRepo   = failed(http.StatusBadRequest, "malformed repository name")
	InviteExpired = failed(http.StatusBadRequest, "invitation expired")

	Unauthorized = failed(http.StatusUnauthorized, "missing or invalid bearer token")
	TokenExpired = failed(http.StatusUnauthorized, "token is expired")

	Forbidden = failed(http.StatusForbidden, "not a member of this site")

	NotFound = failed(http.StatusNotFound, "not found")

	RateLimited = failed(http.StatusTooManyRequests, "rate limit exceeded")

	InternalError = failed(http.StatusInternalServerError, "internal error")
	UpstreamError = failed(http.StatusBadGateway, "upstream request failed")
)
