package handlers

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	applog "yourcar/internal/log"
	"yourcar/internal/schema"
)

type GraphQLHandler struct {
	Schema graphql.Schema
}

func gqlFail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"errors": []fiber.Map{{"message": msg}}})
}

// Serve handles POST /graphql (JSON body) and GET /graphql (query string, queries only).
func (h *GraphQLHandler) Serve(c *fiber.Ctx) error {
	var req schema.Request
	if c.Method() == fiber.MethodGet {
		req.Query = c.Query("query")
		req.OperationName = c.Query("operationName")
		if raw := c.Query("variables"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &req.Variables); err != nil {
				applog.Security(c, "validation.fail", map[string]any{"field": "variables"})
				return gqlFail(c, fiber.StatusBadRequest, "variables must be a JSON object")
			}
		}
	} else if err := c.BodyParser(&req); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"field": "body"})
		return gqlFail(c, fiber.StatusBadRequest, "malformed GraphQL request body")
	}

	if strings.TrimSpace(req.Query) == "" {
		return gqlFail(c, fiber.StatusBadRequest, "missing query")
	}
	if c.Method() == fiber.MethodGet && schema.IsMutation(req.Query, req.OperationName) {
		return gqlFail(c, fiber.StatusMethodNotAllowed, "mutations must use POST")
	}

	rid, _ := c.Locals("requestid").(string)
	ctx := applog.WithRequestID(c.UserContext(), rid)
	return c.JSON(schema.Do(ctx, h.Schema, req))
}
