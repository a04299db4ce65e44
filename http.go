package users

import (
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

// TokenFromHeader extracts the raw token from an Authorization header value.
// A "Bearer " prefix is stripped case-insensitively; anything else is taken
// as the raw token.
func TokenFromHeader(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}

	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}

	return header
}

// SessionMiddleware resolves the Authorization header to a session user and
// stores it in the request locals and the standard context. It never rejects
// a request: a missing or invalid token just leaves the caller anonymous,
// and each handler decides what anonymous means for it.
func SessionMiddleware(auth Authenticator) router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			token := TokenFromHeader(ctx.GetString("Authorization", ""))

			if user := auth.SessionFromToken(token); user != nil {
				ctx.Locals(SessionKey, user)
				ctx.SetContext(WithContext(ctx.Context(), user))
			}

			return ctx.Next()
		}
	}
}

type errorBody struct {
	Message  string `json:"message"`
	TextCode string `json:"text_code,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

// RespondError renders err as a JSON error response. Rich errors carry their
// own status code; anything else is a 500 with its message passed through
// verbatim.
func RespondError(ctx router.Context, err error, logger Logger) error {
	if logger == nil {
		logger = defLogger{}
	}

	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryInternal, err.Error()).
			WithCode(errors.CodeInternal)
	}

	status := richErr.Code
	if status < 400 || status > 599 {
		status = router.StatusInternalServerError
	}

	if richErr.Metadata != nil {
		logger.Debug("request error metadata: %s", print.MaybePrettyJSON(richErr.Metadata))
	}

	return ctx.JSON(status, errorResponse{
		Error: errorBody{
			Message:  richErr.Message,
			TextCode: richErr.TextCode,
		},
	})
}
