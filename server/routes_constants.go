package server

const (
	RouteWellKnownJWKS = "/.well-known/jwks.json"

	// X-Amz-Target carries the action, prefixed with the provider
	// service name.
	amzTargetHeader = "X-Amz-Target"
	servicePrefix   = "AWSCognitoIdentityProviderService."

	ActionSignUp                 = "SignUp"
	ActionConfirmSignUp          = "ConfirmSignUp"
	ActionInitiateAuth           = "InitiateAuth"
	ActionRespondToAuthChallenge = "RespondToAuthChallenge"

	contentTypeJSON = "application/json; charset=utf-8"
)
