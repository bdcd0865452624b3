package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-cognito-local/cognito"
	"github.com/rs/zerolog/log"
)

// ActionHandler dispatches on the X-Amz-Target header and forwards the
// JSON body to the matching protocol engine action.
func (s *Server) ActionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		action := strings.TrimPrefix(r.Header.Get(amzTargetHeader), servicePrefix)

		response, err := s.dispatch(r.Context(), action, r.Body)
		if err != nil {
			s.writeError(w, action, err)
			return
		}

		w.Header().Set("Content-Type", contentTypeJSON)
		_ = json.NewEncoder(w).Encode(response)
	}
}

// JWKS returns the JSON Web Key Set used to validate issued tokens
func (s *Server) JWKS() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentTypeJSON)
		w.Header().Set("Cache-Control", "public, max-age=3600")
		_ = json.NewEncoder(w).Encode(s.signer.GetJWKS())
	}
}

func (s *Server) dispatch(ctx context.Context, action string, body io.Reader) (any, error) {
	switch action {
	case ActionSignUp:
		var req cognito.SignUpRequest
		if err := decodeBody(body, &req); err != nil {
			return nil, err
		}
		return s.cognito.SignUp(ctx, req)

	case ActionConfirmSignUp:
		var req cognito.ConfirmSignUpRequest
		if err := decodeBody(body, &req); err != nil {
			return nil, err
		}
		return s.cognito.ConfirmSignUp(ctx, req)

	case ActionInitiateAuth:
		var req cognito.InitiateAuthRequest
		if err := decodeBody(body, &req); err != nil {
			return nil, err
		}
		return s.cognito.InitiateAuth(ctx, req)

	case ActionRespondToAuthChallenge:
		var req cognito.RespondToAuthChallengeRequest
		if err := decodeBody(body, &req); err != nil {
			return nil, err
		}
		return s.cognito.RespondToAuthChallenge(ctx, req)

	default:
		return nil, cognito.ErrUnknownOperation
	}
}

func decodeBody(body io.Reader, target any) error {
	if err := json.NewDecoder(body).Decode(target); err != nil {
		return &cognito.Error{
			Code:    "InvalidParameterException",
			Message: "Could not parse request body: " + err.Error(),
		}
	}
	return nil
}

// writeError maps engine failures onto the provider's error body
// {code, name, message}. Caller mistakes are 400s; signing failures
// and unimplemented actions are 500s.
func (s *Server) writeError(w http.ResponseWriter, action string, err error) {
	var apiErr *cognito.Error
	if !errors.As(err, &apiErr) {
		log.Error().Err(err).Str("action", action).Msg("request failed")
		apiErr = cognito.ErrInternal
	}

	status := http.StatusBadRequest
	switch apiErr.Code {
	case cognito.ErrInternal.Code:
		status = http.StatusInternalServerError
	case cognito.ErrUnknownOperation.Code:
		log.Error().Str("action", action).Msg("unsupported Cognito action")
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":    apiErr.Code,
		"name":    apiErr.Code,
		"message": apiErr.Message,
	})
}
