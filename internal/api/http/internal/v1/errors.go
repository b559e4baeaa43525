package v1

// Errors
const (
	UnknownErrorCode    = 0
	UnknownErrorMessage = "unknown error"

	UserAlreadyExistsCode         = 1001
	UserAlreadyExistsMessage      = "user already exists"
	UserNotFoundCode              = 1002
	UserNotFoundMessage           = "user not found"
	InvalidCredentialsCode        = 1003
	InvalidCredentialsMessage     = "invalid email or password"
	RefreshTokenInvalidCode       = 1004
	RefreshTokenInvalidMessage    = "refresh token invalid or expired"
	VerificationTokenMissingCode  = 2001
	VerificationTokenMissingMsg   = "verification token is required"
	VerificationTokenInvalidCode  = 2002
	VerificationTokenInvalidMsg   = "invalid or expired verification token"
	VerificationTokenExpiredCode  = 2003
	VerificationTokenExpiredMsg   = "verification token has expired"
	UserAlreadyVerifiedCode       = 2004
	UserAlreadyVerifiedMessage    = "user is already verified"
	VerificationResendTooSoonCode = 2005
	VerificationResendTooSoonMsg  = "verification email requested too recently"
)

type ErrorCode int
type ErrorMessage string

type ErrorStruct struct {
	ErrorCode    `json:"error_code"`
	ErrorMessage `json:"error_message"`
} // @name ErrorStruct

type ValidationErrorStruct struct {
	ErrorCode    int               `json:"error_code"`
	ErrorMessage string            `json:"error_message"`
	Errors       []ValidationError `json:"validation_errors"`
}

type ValidationError struct {
	FieldKey     string `json:"field_key"`
	ErrorMessage string `json:"error_message"`
}

func getErrorStruct(code ErrorCode) *ErrorStruct {
	errorStruct := &ErrorStruct{
		ErrorCode:    UnknownErrorCode,
		ErrorMessage: UnknownErrorMessage,
	}

	switch code {
	case UserAlreadyExistsCode:
		errorStruct.ErrorCode = UserAlreadyExistsCode
		errorStruct.ErrorMessage = UserAlreadyExistsMessage
	case UserNotFoundCode:
		errorStruct.ErrorCode = UserNotFoundCode
		errorStruct.ErrorMessage = UserNotFoundMessage
	case InvalidCredentialsCode:
		errorStruct.ErrorCode = InvalidCredentialsCode
		errorStruct.ErrorMessage = InvalidCredentialsMessage
	case RefreshTokenInvalidCode:
		errorStruct.ErrorCode = RefreshTokenInvalidCode
		errorStruct.ErrorMessage = RefreshTokenInvalidMessage
	case VerificationTokenMissingCode:
		errorStruct.ErrorCode = VerificationTokenMissingCode
		errorStruct.ErrorMessage = VerificationTokenMissingMsg
	case VerificationTokenInvalidCode:
		errorStruct.ErrorCode = VerificationTokenInvalidCode
		errorStruct.ErrorMessage = VerificationTokenInvalidMsg
	case VerificationTokenExpiredCode:
		errorStruct.ErrorCode = VerificationTokenExpiredCode
		errorStruct.ErrorMessage = VerificationTokenExpiredMsg
	case UserAlreadyVerifiedCode:
		errorStruct.ErrorCode = UserAlreadyVerifiedCode
		errorStruct.ErrorMessage = UserAlreadyVerifiedMessage
	case VerificationResendTooSoonCode:
		errorStruct.ErrorCode = VerificationResendTooSoonCode
		errorStruct.ErrorMessage = VerificationResendTooSoonMsg
	}

	return errorStruct
}
