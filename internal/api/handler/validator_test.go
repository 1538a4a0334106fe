package handler

import "testing"

func TestValidatorMessages(t *testing.T) {
	v := NewValidator()

	cases := []struct {
		name    string
		input   signupRequest
		message string
	}{
		{"missing name", signupRequest{Email: "a@example.com", Password: "x"}, "Please enter name!"},
		{"missing email", signupRequest{Name: "alice", Password: "x"}, "Please enter email!"},
		{"missing password", signupRequest{Name: "alice", Email: "a@example.com"}, "Please enter password!"},
		{"bad email", signupRequest{Name: "alice", Email: "nope", Password: "x"}, "Please enter valid email!"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(&tc.input)
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if err.Error() != tc.message {
				t.Fatalf("message = %q, want %q", err.Error(), tc.message)
			}
		})
	}
}

func TestValidatorAcceptsValidInput(t *testing.T) {
	v := NewValidator()
	req := signupRequest{Name: "alice", Email: "alice@example.com", Password: "password123"}
	if err := v.Validate(&req); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}
