package jwtutil_test

import (
	"testing"

	jwtutil "pageflow/util/jwt"
)

func TestIssueAndParse(t *testing.T) {
	token, err := jwtutil.Issue("test_secret", 42, "user", 1)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := jwtutil.ParseAuth("Bearer "+token, "test_secret")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if sub, _ := claims["sub"].(float64); int64(sub) != 42 {
		t.Fatalf("sub claim: got %v", claims["sub"])
	}
	if role, _ := claims["role"].(string); role != "user" {
		t.Fatalf("role claim: got %v", claims["role"])
	}
}

func TestParse_Rejects(t *testing.T) {
	token, _ := jwtutil.Issue("test_secret", 42, "user", 1)

	if _, err := jwtutil.ParseAuth("", "test_secret"); err == nil {
		t.Fatal("empty header must fail")
	}
	if _, err := jwtutil.ParseAuth("Bearer "+token, "other_secret"); err == nil {
		t.Fatal("wrong secret must fail")
	}
	if _, err := jwtutil.ParseAuth("Bearer not.a.token", "test_secret"); err == nil {
		t.Fatal("garbage token must fail")
	}
}
