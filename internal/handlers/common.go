package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"trivia-coffee-backend/internal/apperr"
	"trivia-coffee-backend/internal/logger"
	"trivia-coffee-backend/internal/middleware"
	"trivia-coffee-backend/internal/models"
	"trivia-coffee-backend/internal/response"

	"github.com/gin-gonic/gin"
)

// Type aliases so swag can resolve models in annotations.
type Question = models.Question
type ShortDrink = models.ShortDrink
type LongDrink = models.LongDrink
type ErrorEnvelope = response.ErrorEnvelope

// Messages maps a status to the fixed text a service puts in its envelope.
type Messages map[int]string

var TriviaMessages = Messages{
	http.StatusBadRequest:          "bad request",
	http.StatusNotFound:            "Not found",
	http.StatusMethodNotAllowed:    "method not allowed",
	http.StatusUnprocessableEntity: "unprocessable",
	http.StatusInternalServerError: "internal server error",
}

var CoffeeMessages = Messages{
	http.StatusBadRequest:          "bad request",
	http.StatusNotFound:            "Page not Found",
	http.StatusMethodNotAllowed:    "method not allowed",
	http.StatusUnprocessableEntity: "unprocessable",
	http.StatusInternalServerError: "internal server error",
}

func (m Messages) text(status int) string {
	if msg, ok := m[status]; ok {
		return msg
	}
	return http.StatusText(status)
}

// Abort renders status with the service's fixed message.
func (m Messages) Abort(c *gin.Context, status int) {
	response.Abort(c, status, m.text(status))
}

// renderError converts err into the failure envelope. Expected failures
// carry their own status; anything else is logged as unexpected and
// rendered with fallback.
func renderError(c *gin.Context, log *logger.Logger, msgs Messages, err error, fallback int) {
	e, ok := apperr.As(err)
	if !ok {
		log.Error("unexpected failure", "path", c.FullPath(), "status", fallback, "error", err)
		response.Error(c, fallback, msgs.text(fallback))
		return
	}

	log.Warn("request failed", "path", c.FullPath(), "status", e.Status, "code", e.Code, "error", err)
	if apperr.IsAuth(e) {
		response.Error(c, e.Status, e.Message)
		return
	}
	response.Error(c, e.Status, msgs.text(e.Status))
}

func subject(c *gin.Context) string {
	if claims := middleware.Claims(c); claims != nil {
		return claims.Subject
	}
	return ""
}

// queryPage reads ?page=N, defaulting to 1 when absent or not an integer.
func queryPage(c *gin.Context) int {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		return 1
	}
	return page
}

// badBody wraps a JSON decode or binding validation failure as 422.
func badBody(err error) error {
	return apperr.Unprocessable(fmt.Errorf("malformed request body: %w", err))
}

// flexInt accepts a JSON number or a numeric string, since the trivia
// frontend posts category ids as strings.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		*f = flexInt(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexInt(n)
	return nil
}
