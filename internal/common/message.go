package common

import "errors"

// GenericFailureMessage is shown when a state-sync operation fails.
const GenericFailureMessage = "Something went wrong, please try again"

// UserMessage maps an error to the text shown to the end user. Authentication
// failures from the remote backend keep the server's own message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var re *RemoteError
	if errors.As(err, &re) && re.Message != "" && errors.Is(err, ErrInvalidCredentials) {
		return re.Message
	}

	switch {
	case errors.Is(err, ErrWrongPassword):
		return "Wrong password"
	case errors.Is(err, ErrPhoneNotRegistered):
		return "This phone number is not registered. Please sign up for a new account."
	case errors.Is(err, ErrDuplicatePhone):
		return "This phone number is already registered"
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid phone or password"
	case errors.Is(err, ErrMissingFields):
		return "Please fill in all required fields"
	case errors.Is(err, ErrProfileIncomplete):
		return "Please complete all required profile fields"
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrNotAuthenticated):
		return "Your session has expired, please sign in again"
	case errors.Is(err, ErrNetworkUnavailable):
		return "The server is unreachable"
	default:
		return GenericFailureMessage
	}
}
