package shared

import (
	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

var JsonAPI = sonic.Config{
	UseNumber:            true,
	EscapeHTML:           false,
	SortMapKeys:          false,
	CompactMarshaler:     true,
	NoQuoteTextMarshaler: true,
	NoNullSliceOrMap:     true,
}.Froze()

var (
	successResponse       = mustMarshal(Response{Code: 200, Message: "Success"})
	createdResponse       = mustMarshal(Response{Code: 201, Message: "Created"})
	notFoundResponse      = mustMarshal(Response{Code: 404, Message: "Not Found"})
	unauthorizedResponse  = mustMarshal(Response{Code: 401, Message: "Unauthorized"})
	badRequestResponse    = mustMarshal(Response{Code: 400, Message: "Bad Request"})
	forbiddenResponse     = mustMarshal(Response{Code: 403, Message: "Forbidden"})
	internalErrorResponse = mustMarshal(Response{Code: 500, Message: "Internal Server Error"})
)

func mustMarshal(v interface{}) []byte {
	b, _ := JsonAPI.Marshal(v)
	return b
}

func cannedResponse(httpCode int, message string) []byte {
	switch httpCode {
	case 200:
		if message == "Success" {
			return successResponse
		}
	case 201:
		if message == "Created" {
			return createdResponse
		}
	case 400:
		if message == "Bad Request" {
			return badRequestResponse
		}
	case 401:
		if message == "Unauthorized" {
			return unauthorizedResponse
		}
	case 403:
		if message == "Forbidden" {
			return forbiddenResponse
		}
	case 404:
		if message == "Not Found" {
			return notFoundResponse
		}
	case 500:
		if message == "Internal Server Error" {
			return internalErrorResponse
		}
	}
	return nil
}

func ResponseJSON(c *fiber.Ctx, httpCode int, message string, data interface{}) error {
	if data == nil {
		if canned := cannedResponse(httpCode, message); canned != nil {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
			return c.Status(httpCode).Send(canned)
		}
	}

	return c.Status(httpCode).JSON(Response{
		Code:    httpCode,
		Message: message,
		Data:    data,
	})
}

func ResponseOK(c *fiber.Ctx, data interface{}) error {
	return ResponseJSON(c, 200, "Success", data)
}

func ResponseCreated(c *fiber.Ctx, data interface{}) error {
	return ResponseJSON(c, 201, "Created", data)
}

func ResponseNotFound(c *fiber.Ctx) error {
	return ResponseJSON(c, 404, "Not Found", nil)
}

func ResponseUnauthorized(c *fiber.Ctx) error {
	return ResponseJSON(c, 401, "Unauthorized", nil)
}

func ResponseBadRequest(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Bad Request"
	}
	return ResponseJSON(c, 400, message, nil)
}

func ResponseForbidden(c *fiber.Ctx) error {
	return ResponseJSON(c, 403, "Forbidden", nil)
}

func ResponseInternalError(c *fiber.Ctx, err error) error {
	return ResponseJSON(c, 500, "Internal Server Error", err.Error())
}
