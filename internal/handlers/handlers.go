package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sumafit/medstore/internal/mykafka"
)

func errorResponse(c echo.Context, code int, message string) error {
	return c.JSON(code, echo.Map{"message": message})
}

func parseID(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(v), nil
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func publish(c echo.Context, producer *mykafka.Producer, topic, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := producer.PublishEvent(ctx, topic, key, event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}
