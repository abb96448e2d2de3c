package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// bufferingWriter captures the handler's status and body so the response can
// be rewritten before anything reaches the wire.
type bufferingWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (w *bufferingWriter) WriteHeader(code int) {
	w.status = code
}

func (w *bufferingWriter) Write(b []byte) (int, error) {
	return w.body.Write(b)
}

// ResponseEnvelope normalizes every JSON response into the {data, error}
// envelope. Bodies that already are an envelope pass through unchanged, so
// wrapping is idempotent; a pass-through with a non-null error and a success
// status is corrected to 400. Handler errors are left for the central error
// handler, which writes envelopes itself.
func ResponseEnvelope() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			res := c.Response()
			w := &bufferingWriter{ResponseWriter: res.Writer, status: http.StatusOK}
			res.Writer = w

			err := next(c)
			res.Writer = w.ResponseWriter
			if err != nil {
				// A handler that wrote a body before failing still gets its
				// bytes on the wire; the central error handler skips committed
				// responses, so dropping the buffer here would send nothing.
				if w.body.Len() > 0 {
					if flushErr := flush(res, w.status, w.body.Bytes()); flushErr != nil {
						return flushErr
					}
				}
				return err
			}
			if w.body.Len() == 0 {
				if res.Committed {
					res.Writer.WriteHeader(w.status)
				}
				return nil
			}

			body := w.body.Bytes()
			status := w.status

			ct := res.Header().Get(echo.HeaderContentType)
			if !strings.HasPrefix(ct, echo.MIMEApplicationJSON) {
				return flush(res, status, body)
			}

			if env, ok := decodeEnvelope(body); ok {
				if !isJSONNull(env["error"]) && status < http.StatusBadRequest {
					status = http.StatusBadRequest
				}
				return flush(res, status, body)
			}

			wrapped, ok := wrapBody(status, body)
			if !ok {
				return flush(res, status, body)
			}
			return flush(res, status, wrapped)
		}
	}
}

// decodeEnvelope reports whether body is a JSON object with exactly the keys
// "data" and "error". This structural check is what makes wrapping idempotent.
func decodeEnvelope(body []byte) (map[string]json.RawMessage, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, false
	}
	if len(obj) != 2 {
		return nil, false
	}
	_, hasData := obj["data"]
	_, hasErr := obj["error"]
	return obj, hasData && hasErr
}

func isJSONNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

// wrapBody rewrites a non-envelope JSON body into envelope shape by status:
// error side for >= 400, data side otherwise.
func wrapBody(status int, body []byte) ([]byte, bool) {
	if !json.Valid(body) {
		return nil, false
	}
	raw := json.RawMessage(body)

	var out []byte
	var err error
	if status >= http.StatusBadRequest {
		errObj := raw
		if len(body) == 0 || body[0] != '{' {
			if errObj, err = json.Marshal(map[string]json.RawMessage{"message": raw}); err != nil {
				return nil, false
			}
		}
		out, err = json.Marshal(map[string]json.RawMessage{
			"data":  json.RawMessage("null"),
			"error": errObj,
		})
	} else {
		out, err = json.Marshal(map[string]json.RawMessage{
			"data":  raw,
			"error": json.RawMessage("null"),
		})
	}
	if err != nil {
		return nil, false
	}
	return out, true
}

func flush(res *echo.Response, status int, body []byte) error {
	res.Header().Set(echo.HeaderContentLength, strconv.Itoa(len(body)))
	res.Writer.WriteHeader(status)
	_, err := res.Writer.Write(body)
	return err
}
