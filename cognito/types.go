package cognito

import "github.com/jrsteele09/go-cognito-local/token"

// Wire constants of the stubbed challenge-response exchange. The flow
// and challenge names are the provider's; the SRP values are inert
// placeholders — no secure remote password math happens here.
const (
	AuthFlowUserSRP           = "USER_SRP_AUTH"
	ChallengePasswordVerifier = "PASSWORD_VERIFIER"

	// USERNAME key inside AuthParameters / ChallengeResponses
	ParamUsername = "USERNAME"

	emailAttributeName = "email"

	srpBPlaceholder        = "2a"
	saltPlaceholder        = "4c"
	secretBlockPlaceholder = "unused"
)

// UserAttribute is one Name/Value pair from a SignUp request.
type UserAttribute struct {
	Name  string `json:"Name"`
	Value string `json:"Value"`
}

type SignUpRequest struct {
	Username       string          `json:"Username"`
	Password       string          `json:"Password"`
	UserAttributes []UserAttribute `json:"UserAttributes"`
}

type SignUpResponse struct {
	UserConfirmed bool `json:"UserConfirmed"`
}

type ConfirmSignUpRequest struct {
	Username string `json:"Username"`
}

// ConfirmSignUpResponse is deliberately empty: confirmation performs
// no state change and exists to satisfy callers expecting the round
// trip.
type ConfirmSignUpResponse struct{}

type InitiateAuthRequest struct {
	AuthFlow       string            `json:"AuthFlow"`
	AuthParameters map[string]string `json:"AuthParameters"`
}

// ChallengeParameters are the fixed stand-ins a real SRP exchange
// would require the client to compute a proof from.
type ChallengeParameters struct {
	UserIDForSRP string `json:"USER_ID_FOR_SRP"`
	SRPB         string `json:"SRP_B"`
	Salt         string `json:"SALT"`
	SecretBlock  string `json:"SECRET_BLOCK"`
}

type InitiateAuthResponse struct {
	ChallengeParameters ChallengeParameters `json:"ChallengeParameters"`
}

type RespondToAuthChallengeRequest struct {
	ChallengeName      string            `json:"ChallengeName"`
	ClientID           string            `json:"ClientId"`
	ChallengeResponses map[string]string `json:"ChallengeResponses"`
}

type RespondToAuthChallengeResponse struct {
	AuthenticationResult *token.Tokens `json:"AuthenticationResult"`
}
