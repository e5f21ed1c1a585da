package test

import (
	pkgAuth "github.com/elijahkelechi/Beautytrendy-API/internal/pkg/auth"
)

// StrategyStub issues and parses tokens via function overrides.
type StrategyStub struct {
	IssueFn func(int64, string) (string, error)
	ParseFn func(string) (*pkgAuth.Claims, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(userID int64, role string) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(userID, role)
	}
	return "token", nil
}

// ParseToken parses previously issued token strings.
func (s StrategyStub) ParseToken(token string) (*pkgAuth.Claims, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return &pkgAuth.Claims{UserID: 1, Role: pkgAuth.RoleCustomer}, nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// TokenParserStub implements middleware token parsing contract.
type TokenParserStub struct {
	Claims  *pkgAuth.Claims
	Err     error
	ParseFn func(string) (*pkgAuth.Claims, error)
}

// ParseToken either delegates to override or returns predefined result.
func (s TokenParserStub) ParseToken(token string) (*pkgAuth.Claims, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Claims != nil {
		return s.Claims, nil
	}
	return &pkgAuth.Claims{UserID: 1, Role: pkgAuth.RoleCustomer}, nil
}

var _ pkgAuth.Strategy = StrategyStub{}
