package consts

// Redis key prefixes.
const (
	SiteInfoKey  = "site:info:"
	RateLimitKey = "ratelimit:"
)
