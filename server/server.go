// Package server exposes the protocol engine over the provider's HTTP
// surface: header-dispatched actions on POST / and the JWKS discovery
// document.
package server

import (
	"fmt"
	"net/http"

	"github.com/jrsteele09/go-cognito-local/cognito"
	"github.com/jrsteele09/go-cognito-local/internal/config"
	"github.com/jrsteele09/go-cognito-local/token/keys"
	"github.com/rs/zerolog/log"
)

// Server routes inbound requests to the protocol engine.
type Server struct {
	env     string
	mux     *http.ServeMux
	routes  []string
	cognito *cognito.Service
	signer  keys.Signer
}

// New wires the HTTP surface around an already-constructed protocol
// engine and signer.
func New(cfg config.Config, service *cognito.Service, signer keys.Signer) (*Server, error) {
	if service == nil {
		return nil, fmt.Errorf("[Server New] cognito service is required")
	}
	if signer == nil {
		return nil, fmt.Errorf("[Server New] signer is required")
	}

	s := &Server{
		env:     cfg.Env,
		mux:     http.NewServeMux(),
		cognito: service,
		signer:  signer,
	}
	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("POST /{$}", ChainMiddleware(s.ActionHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteWellKnownJWKS, ChainMiddleware(s.JWKS(), s.APIMiddleware()...))
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return
	}
	for _, route := range s.routes {
		log.Info().Str("route", route).Msg("registered route")
	}
}
