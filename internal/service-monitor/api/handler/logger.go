package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger records handler failures together with the request they belong to.
type Logger interface {
	LoggingError(c *gin.Context, err error, errDescription string, logLevel zapcore.Level)
}

type logger struct {
	log *zap.Logger
}

func (l *logger) LoggingError(c *gin.Context, err error, errDescription string, logLevel zapcore.Level) {
	fields := []zapcore.Field{
		zap.Error(err),
		zap.String("http_method", c.Request.Method),
		zap.String("http_path", c.Request.URL.Path),
	}
	if route := c.FullPath(); route != "" {
		fields = append(fields, zap.String("http_route", route))
	}
	if ip := c.ClientIP(); ip != "" {
		fields = append(fields, zap.String("client_ip", ip))
	}
	if id := c.Param("serviceId"); id != "" {
		fields = append(fields, zap.String("service_id", id))
	}
	l.log.Log(logLevel, errDescription, fields...)
}

func NewLogger(l *zap.Logger) Logger {
	return &logger{
		log: l.Named("api"),
	}
}
