package handlers_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"yourcar/internal/http/handlers"
)

func TestGraphQLLimiter(t *testing.T) {
	app := fiber.New()
	app.Post("/graphql", handlers.GraphQLLimiter(3), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"data": fiber.Map{}})
	})

	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest("POST", "/graphql", strings.NewReader(`{}`)))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("request %d: status %d", i+1, resp.StatusCode)
		}
	}
	resp, err := app.Test(httptest.NewRequest("POST", "/graphql", strings.NewReader(`{}`)))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.StatusCode)
	}
	res := readGraphQL(t, resp)
	if len(res.Errors) == 0 {
		t.Fatal("429 body should carry a GraphQL error")
	}
}
