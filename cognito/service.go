// Package cognito implements the account/authentication protocol of a
// local Cognito user pool stand-in: registration, confirmation, and a
// stubbed SRP challenge-response login that issues signed tokens.
package cognito

import (
	"context"
	"errors"
	"fmt"

	"github.com/jrsteele09/go-cognito-local/accounts"
	"github.com/jrsteele09/go-cognito-local/token"
)

// Service is the protocol engine. Every action is a stateless handler
// over the injected account store; the token issuer is only reached on
// a successful challenge response.
type Service struct {
	accounts accounts.Repo
	issuer   *token.Issuer
}

// NewService initializes the protocol engine with its dependencies.
func NewService(accountRepo accounts.Repo, issuer *token.Issuer) (*Service, error) {
	if accountRepo == nil {
		return nil, errors.New("[NewService] account repo is required")
	}
	if issuer == nil {
		return nil, errors.New("[NewService] token issuer is required")
	}
	return &Service{
		accounts: accountRepo,
		issuer:   issuer,
	}, nil
}

// SignUp registers a new account. The email claim is taken from the
// "email" user attribute. A username can only ever be registered once;
// concurrent registrations are serialized by the store, so at most one
// caller sees success.
func (s *Service) SignUp(ctx context.Context, req SignUpRequest) (*SignUpResponse, error) {
	account := &accounts.Account{
		Username: req.Username,
		Password: req.Password,
		Email:    emailAttribute(req.UserAttributes),
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, accounts.ErrAlreadyExists) {
			return nil, ErrUsernameExists
		}
		return nil, fmt.Errorf("[SignUp] failed to store account: %w", err)
	}

	// No out-of-band confirmation happens; the account is immediately
	// confirmed.
	return &SignUpResponse{UserConfirmed: true}, nil
}

// ConfirmSignUp checks the account exists and succeeds with an empty
// result. Nothing is confirmed — the action exists for callers that
// expect the confirmation round trip.
func (s *Service) ConfirmSignUp(ctx context.Context, req ConfirmSignUpRequest) (*ConfirmSignUpResponse, error) {
	if _, err := s.getAccount(ctx, req.Username); err != nil {
		return nil, err
	}
	return &ConfirmSignUpResponse{}, nil
}

// InitiateAuth starts the stubbed SRP exchange and returns fixed
// challenge parameters for the account.
func (s *Service) InitiateAuth(ctx context.Context, req InitiateAuthRequest) (*InitiateAuthResponse, error) {
	if req.AuthFlow != AuthFlowUserSRP {
		return nil, ErrUnsupportedAuthFlow
	}

	account, err := s.getAccount(ctx, req.AuthParameters[ParamUsername])
	if err != nil {
		return nil, err
	}

	return &InitiateAuthResponse{
		ChallengeParameters: ChallengeParameters{
			UserIDForSRP: account.Username,
			SRPB:         srpBPlaceholder,
			Salt:         saltPlaceholder,
			SecretBlock:  secretBlockPlaceholder,
		},
	}, nil
}

// RespondToAuthChallenge completes the stubbed exchange and issues the
// token set. No challenge response is verified: any caller who knows a
// registered username is authenticated.
func (s *Service) RespondToAuthChallenge(ctx context.Context, req RespondToAuthChallengeRequest) (*RespondToAuthChallengeResponse, error) {
	if req.ChallengeName != ChallengePasswordVerifier {
		return nil, ErrUnsupportedChallenge
	}

	account, err := s.getAccount(ctx, req.ChallengeResponses[ParamUsername])
	if err != nil {
		return nil, err
	}

	tokens, err := s.issuer.Issue(account, req.ClientID)
	if err != nil {
		return nil, fmt.Errorf("[RespondToAuthChallenge] failed to issue tokens: %w", err)
	}

	return &RespondToAuthChallengeResponse{AuthenticationResult: tokens}, nil
}

func (s *Service) getAccount(ctx context.Context, username string) (*accounts.Account, error) {
	account, err := s.accounts.Get(ctx, username)
	if err != nil {
		if errors.Is(err, accounts.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up account %q: %w", username, err)
	}
	return account, nil
}

func emailAttribute(attributes []UserAttribute) string {
	for _, attribute := range attributes {
		if attribute.Name == emailAttributeName {
			return attribute.Value
		}
	}
	return ""
}
