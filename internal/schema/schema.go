// Package schema defines the car GraphQL schema and executes documents against it.
package schema

import (
	"context"
	"errors"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"

	"yourcar/internal/domain"
	applog "yourcar/internal/log"
	"yourcar/internal/services"
)

// GetCarsQuery is the document the top cars view fetches with.
const GetCarsQuery = `query GetCars {
  cars {
    id
    name
    mileage
    thumbnailUrl
    dailyPrice
    monthlyPrice
    gearType
    gas
  }
}`

// Request is the standard GraphQL-over-HTTP request body.
type Request struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
	OperationName string         `json:"operationName,omitempty"`
}

var carType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Car",
	Fields: graphql.Fields{
		"id":           &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"name":         &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"mileage":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"thumbnailUrl": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"dailyPrice":   &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"monthlyPrice": &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"gearType":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"gas":          &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

// Every field is optional: addNewCar requires name, updateCar applies what is present.
var newCarInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "NewCarInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":         &graphql.InputObjectFieldConfig{Type: graphql.String},
		"mileage":      &graphql.InputObjectFieldConfig{Type: graphql.String},
		"thumbnailUrl": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"dailyPrice":   &graphql.InputObjectFieldConfig{Type: graphql.Float},
		"monthlyPrice": &graphql.InputObjectFieldConfig{Type: graphql.Float},
		"gearType":     &graphql.InputObjectFieldConfig{Type: graphql.String},
		"gas":          &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

type adminKey struct{}

// WithAdmin marks ctx as allowed to run mutations.
func WithAdmin(ctx context.Context) context.Context {
	return context.WithValue(ctx, adminKey{}, true)
}

func isAdmin(ctx context.Context) bool {
	ok, _ := ctx.Value(adminKey{}).(bool)
	return ok
}

// New builds the schema over cars. Mutations only run for contexts passed through WithAdmin.
func New(cars *services.CarService) (graphql.Schema, error) {
	r := &resolver{svc: cars}

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"cars": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(carType))),
				Resolve: r.cars,
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"addNewCar": &graphql.Field{
				Type: graphql.NewNonNull(carType),
				Args: graphql.FieldConfigArgument{
					"newCarData": &graphql.ArgumentConfig{Type: graphql.NewNonNull(newCarInput)},
				},
				Resolve: r.guard("addNewCar", r.addNewCar),
			},
			"updateCar": &graphql.Field{
				Type: graphql.NewNonNull(carType),
				Args: graphql.FieldConfigArgument{
					"id":         &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"newCarData": &graphql.ArgumentConfig{Type: graphql.NewNonNull(newCarInput)},
				},
				Resolve: r.guard("updateCar", r.updateCar),
			},
			"deleteCar": &graphql.Field{
				Type: graphql.NewNonNull(carType),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.guard("deleteCar", r.deleteCar),
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query, Mutation: mutation})
}

// Do executes req against s.
func Do(ctx context.Context, s graphql.Schema, req Request) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         s,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        ctx,
	})
}

// IsMutation reports whether the operation selected by opName is a mutation.
// Unparseable documents report false and fail later during execution.
func IsMutation(query, opName string) bool {
	doc, err := parser.Parse(parser.ParseParams{Source: query})
	if err != nil {
		return false
	}
	for _, def := range doc.Definitions {
		op, ok := def.(*ast.OperationDefinition)
		if !ok {
			continue
		}
		name := ""
		if op.Name != nil {
			name = op.Name.Value
		}
		if opName == "" || opName == name {
			return op.Operation == ast.OperationTypeMutation
		}
	}
	return false
}

type resolver struct {
	svc *services.CarService
}

func (r *resolver) guard(op string, next graphql.FieldResolveFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		if !isAdmin(p.Context) {
			applog.SecurityContext(p.Context, "graphql.mutation.denied", map[string]any{"op": op})
			return nil, &codedError{msg: "Forbidden", code: CodeForbidden}
		}
		return next(p)
	}
}

func (r *resolver) cars(p graphql.ResolveParams) (any, error) {
	cars, err := r.svc.Cars(p.Context)
	if err != nil {
		return nil, toGraphQLError(err)
	}
	return cars, nil
}

func (r *resolver) addNewCar(p graphql.ResolveParams) (any, error) {
	c, err := r.svc.AddNewCar(p.Context, patchArg(p.Args))
	if err != nil {
		return nil, toGraphQLError(err)
	}
	return c, nil
}

func (r *resolver) updateCar(p graphql.ResolveParams) (any, error) {
	id, _ := p.Args["id"].(string)
	c, err := r.svc.UpdateCar(p.Context, id, patchArg(p.Args))
	if err != nil {
		return nil, toGraphQLError(err)
	}
	return c, nil
}

func (r *resolver) deleteCar(p graphql.ResolveParams) (any, error) {
	id, _ := p.Args["id"].(string)
	c, err := r.svc.DeleteCar(p.Context, id)
	if err != nil {
		return nil, toGraphQLError(err)
	}
	return c, nil
}

// patchArg reads newCarData; absent and explicit-null fields both stay nil.
func patchArg(args map[string]any) domain.CarPatch {
	in, _ := args["newCarData"].(map[string]any)
	var p domain.CarPatch
	strField := func(key string) *string {
		if v, ok := in[key].(string); ok {
			return &v
		}
		return nil
	}
	floatField := func(key string) *float64 {
		switch v := in[key].(type) {
		case float64:
			return &v
		case int:
			f := float64(v)
			return &f
		}
		return nil
	}
	p.Name = strField("name")
	p.Mileage = strField("mileage")
	p.ThumbnailURL = strField("thumbnailUrl")
	p.GearType = strField("gearType")
	p.Gas = strField("gas")
	p.DailyPrice = floatField("dailyPrice")
	p.MonthlyPrice = floatField("monthlyPrice")
	return p
}

// Extension codes reported under errors[].extensions.code.
const (
	CodeInternal   = "INTERNAL_SERVER_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeBadInput   = "BAD_USER_INPUT"
	CodeForbidden  = "FORBIDDEN"
	msgInternal    = "Internal Server Error"
	msgCarNotFound = "Car not found"
)

type codedError struct {
	msg  string
	code string
}

func (e *codedError) Error() string { return e.msg }

func (e *codedError) Extensions() map[string]any {
	return map[string]any{"code": e.code}
}

func toGraphQLError(err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return &codedError{msg: msgCarNotFound, code: CodeNotFound}
	case errors.Is(err, services.ErrInvalidInput):
		return &codedError{msg: err.Error(), code: CodeBadInput}
	default:
		return &codedError{msg: msgInternal, code: CodeInternal}
	}
}
