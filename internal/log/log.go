package log

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gopkg.in/natefinch/lumberjack.v2"
)

type entry struct {
	TS     string         `json:"ts"`
	Level  string         `json:"level"`
	ReqID  string         `json:"req_id,omitempty"`
	IP     string         `json:"ip,omitempty"`
	Method string         `json:"method,omitempty"`
	Path   string         `json:"path,omitempty"`
	Action string         `json:"action,omitempty"`
	Status int            `json:"status,omitempty"`
	Err    string         `json:"err,omitempty"`
	Fields map[string]any `json:"fields,omitempty"`
}

type reqIDKey struct{}

// WithRequestID tags ctx so that the *Context helpers can correlate
// entries written below the HTTP layer (resolvers, services).
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, reqIDKey{}, id)
}

func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(reqIDKey{}).(string)
	return id
}

// SetFile mirrors the std logger to a size-rotated file next to stdout.
func SetFile(path string) io.Closer {
	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    64,
		MaxBackups: 7,
		MaxAge:     7,
	}
	log.SetOutput(io.MultiWriter(os.Stdout, lj))
	return lj
}

func emit(e entry) {
	e.TS = time.Now().UTC().Format(time.RFC3339)
	b, _ := json.Marshal(e)
	log.Println(string(b))
}

func write(level string, c *fiber.Ctx, action string, err error, fields map[string]any) {
	e := entry{Level: level, Action: action, Fields: fields}
	if c != nil {
		e.IP = c.IP()
		e.Method = c.Method()
		e.Path = c.Path()
		e.Status = c.Response().StatusCode()
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			e.ReqID = rid
		}
	}
	if err != nil {
		e.Err = err.Error()
	}
	emit(e)
}

func writeCtx(level string, ctx context.Context, action string, err error, fields map[string]any) {
	e := entry{Level: level, Action: action, Fields: fields, ReqID: RequestID(ctx)}
	if err != nil {
		e.Err = err.Error()
	}
	emit(e)
}

func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write("warn", c, action, nil, fields)
}
func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write("error", c, action, err, fields)
}

func InfoContext(ctx context.Context, action string, fields map[string]any) {
	writeCtx("info", ctx, action, nil, fields)
}
func AuditContext(ctx context.Context, action string, fields map[string]any) {
	writeCtx("audit", ctx, action, nil, fields)
}
func SecurityContext(ctx context.Context, action string, fields map[string]any) {
	writeCtx("warn", ctx, action, nil, fields)
}
func ErrorContext(ctx context.Context, action string, err error, fields map[string]any) {
	writeCtx("error", ctx, action, err, fields)
}
