package handlers_test

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	"yourcar/internal/schema"
)

func tokenHash(t *testing.T, token string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	return string(h)
}

func TestMutationGuard(t *testing.T) {
	const token = "s3cret-admin-token"
	app, _, _ := newTestApp(t, tokenHash(t, token))

	tests := []struct {
		name   string
		header map[string]string
		want   string
	}{
		{"no token", nil, schema.CodeForbidden},
		{"wrong scheme", map[string]string{"Authorization": "Basic " + token}, schema.CodeForbidden},
		{"wrong token", map[string]string{"Authorization": "Bearer nope"}, schema.CodeForbidden},
		{"valid token", map[string]string{"Authorization": "Bearer " + token}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, res := postGraphQL(t, app, addAudi, tt.header)
			if got := res.code(); got != tt.want {
				t.Fatalf("code = %q, want %q (%v)", got, tt.want, res.Errors)
			}
		})
	}
}

func TestMutationGuard_QueriesStayOpen(t *testing.T) {
	app, _, _ := newTestApp(t, tokenHash(t, "tok"))
	status, res := postGraphQL(t, app, `{"query":"{ cars { id } }"}`, nil)
	if status != 200 || len(res.Errors) > 0 {
		t.Fatalf("status=%d errors=%v", status, res.Errors)
	}
}
