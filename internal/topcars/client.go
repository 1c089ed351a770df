package topcars

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"yourcar/internal/domain"
	"yourcar/internal/schema"
)

type getCarsResponse struct {
	Data *struct {
		Cars []domain.Car `json:"cars"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func decodeCars(body []byte) ([]domain.Car, error) {
	var resp getCarsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode GetCars response: %w", err)
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("GetCars: %s", resp.Errors[0].Message)
	}
	if resp.Data == nil {
		return nil, errors.New("GetCars: response has no data")
	}
	return resp.Data.Cars, nil
}

// LocalClient runs GetCars against a schema in the same process.
type LocalClient struct {
	Schema graphql.Schema
}

func (c *LocalClient) GetCars(ctx context.Context) ([]domain.Car, error) {
	res := schema.Do(ctx, c.Schema, schema.Request{Query: schema.GetCarsQuery, OperationName: "GetCars"})
	body, err := json.Marshal(res)
	if err != nil {
		return nil, err
	}
	return decodeCars(body)
}

// RemoteClient posts GetCars to a GraphQL endpoint over HTTP.
type RemoteClient struct {
	Endpoint string
	Timeout  time.Duration
}

type agentResult struct {
	code int
	body []byte
	errs []error
}

func (c *RemoteClient) GetCars(ctx context.Context) ([]domain.Car, error) {
	a := fiber.Post(c.Endpoint)
	a.JSON(schema.Request{Query: schema.GetCarsQuery, OperationName: "GetCars"})
	timeout := c.Timeout
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); timeout <= 0 || left < timeout {
			timeout = left
		}
	}
	if timeout > 0 {
		a.Timeout(timeout)
	}
	if err := a.Parse(); err != nil {
		return nil, err
	}

	// The agent has no context support; the timeout above bounds the goroutine.
	done := make(chan agentResult, 1)
	go func() {
		code, body, errs := a.Bytes()
		done <- agentResult{code: code, body: body, errs: errs}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		if len(r.errs) > 0 {
			return nil, errors.Join(r.errs...)
		}
		if r.code != fiber.StatusOK {
			return nil, fmt.Errorf("GetCars: unexpected status %d", r.code)
		}
		return decodeCars(r.body)
	}
}
