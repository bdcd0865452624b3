package cognito

// Error is an API failure with the provider's exception code, which is
// what callers of the real service dispatch on.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrUsernameExists = &Error{
		Code:    "UsernameExistsException",
		Message: "An account with the given username already exists.",
	}
	ErrUserNotFound = &Error{
		Code:    "UserNotFoundException",
		Message: "User does not exist.",
	}
	ErrUnsupportedAuthFlow = &Error{
		Code:    "InvalidParameterException",
		Message: "Unsupported auth flow, only USER_SRP_AUTH is available.",
	}
	ErrUnsupportedChallenge = &Error{
		Code:    "InvalidParameterException",
		Message: "Unsupported challenge, only PASSWORD_VERIFIER is available.",
	}
	ErrUnknownOperation = &Error{
		Code:    "UnknownOperationException",
		Message: "Unsupported Cognito action.",
	}
	ErrInternal = &Error{
		Code:    "InternalErrorException",
		Message: "Internal error.",
	}
)
