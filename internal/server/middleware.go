package server

import (
	"net/http"
	"time"

	"github.com/rohanthewiz/rweb"
)

// corsMiddleware lets browser-hosted widgets call the endpoint
func corsMiddleware(c rweb.Context) error {
	c.Response().SetHeader("Access-Control-Allow-Origin", "*")
	c.Response().SetHeader("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	c.Response().SetHeader("Access-Control-Allow-Headers", "Content-Type")

	if c.Request().Method() == "OPTIONS" {
		c.SetStatus(http.StatusOK)
		return nil
	}
	return c.Next()
}

func (s *Server) loggingMiddleware(c rweb.Context) error {
	start := time.Now()
	err := c.Next()

	event := s.log.Debug()
	if err != nil {
		event = s.log.Warn().Err(err)
	}
	event.
		Str("method", c.Request().Method()).
		Str("path", c.Request().Path()).
		Dur("duration", time.Since(start)).
		Msg("request completed")
	return err
}
