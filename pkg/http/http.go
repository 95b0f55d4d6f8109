package http

import "time"

// Http holds HTTP server configuration.
type Http struct {
	Host            string
	Port            int
	Mode            string
	ContextPath     string `mapstructure:"contextPath"`
	PProf           bool
	ExposeMetrics   bool `mapstructure:"exposeMetrics"`
	AccessLog       bool `mapstructure:"accessLog"`
	ReadTimeout     int  `mapstructure:"readTimeout"`
	WriteTimeout    int  `mapstructure:"writeTimeout"`
	IdleTimeout     int  `mapstructure:"idleTimeout"`
	ShutdownTimeout int  `mapstructure:"shutdownTimeout"`
	TLS             TLS
	Auth            Auth
}

type TLS struct {
	CertFile string `mapstructure:"certFile"`
	KeyFile  string `mapstructure:"keyFile"`
}

// Auth holds session token settings for the authorization interceptor.
type Auth struct {
	SecretKey      string        `mapstructure:"secretKey"`
	AccessExpire   time.Duration `mapstructure:"accessExpire"`
	RedisKeyPrefix string        `mapstructure:"redisKeyPrefix"`
}
