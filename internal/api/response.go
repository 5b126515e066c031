package api

import (
	"errors"

	"github.com/abhisek/interviewd/internal/interview"
	"github.com/abhisek/interviewd/internal/resume"
	"github.com/gofiber/fiber/v2"
)

// Envelope is the JSON shape of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Kind    string `json:"kind,omitempty"`
}

func success(c *fiber.Ctx, code int, message string, data any) error {
	return c.Status(code).JSON(Envelope{Success: true, Message: message, Data: data})
}

func failure(c *fiber.Ctx, code int, message string, err error) error {
	env := Envelope{Success: false, Message: message}
	if err != nil {
		env.Error = err.Error()
		env.Kind = interview.ErrorKind(err)
	}
	return c.Status(code).JSON(env)
}

// statusFor maps a controller error to an HTTP status code.
func statusFor(err error) int {
	switch interview.ErrorKind(err) {
	case "validation":
		return fiber.StatusBadRequest
	case "not_found":
		return fiber.StatusNotFound
	case "invalid_state":
		return fiber.StatusConflict
	case "oracle":
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// messageFor returns the human message for a failed operation.
func messageFor(op string, err error) string {
	var nerr *interview.NotFoundError
	if errors.As(err, &nerr) {
		switch nerr.Kind {
		case "session":
			return "Interview not found"
		case "resume":
			return "Resume not found"
		case "question":
			return "Question not found"
		}
	}
	var verr *interview.ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	if errors.Is(err, resume.ErrInvalid) {
		return err.Error()
	}
	var serr *interview.InvalidStateError
	if errors.As(err, &serr) {
		return serr.Message
	}
	return "Failed to " + op
}

// errorHandler renders errors that escape a handler, including fiber's own
// 404 and 405 errors.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	message := err.Error()
	if message == "" {
		message = "Internal Server Error"
	}
	return c.Status(code).JSON(Envelope{Success: false, Message: message})
}
