package constants

const (
	ErrCodeOutOfWindow        = "OUT_OF_WINDOW"
	ErrCodeWalletNotFound     = "WALLET_NOT_FOUND"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeInvalidRequestBody = "INVALID_REQUEST_BODY"
	ErrCodeInvalidTimestamp   = "INVALID_TIMESTAMP"
)

const (
	ErrMsgOutOfWindow        = "timestamp is outside the allowed look-back window"
	ErrMsgWalletNotFound     = "wallet or asset not found"
	ErrMsgValidation         = "update command failed validation"
	ErrMsgInternalError      = "Internal server error"
	ErrMsgInvalidRequestBody = "failed to parse request body"
	ErrMsgInvalidTimestamp   = "timestamp must be RFC 3339"
)

var errorMessages = map[string]string{
	ErrCodeOutOfWindow:        ErrMsgOutOfWindow,
	ErrCodeWalletNotFound:     ErrMsgWalletNotFound,
	ErrCodeValidation:         ErrMsgValidation,
	ErrCodeInternalError:      ErrMsgInternalError,
	ErrCodeInvalidRequestBody: ErrMsgInvalidRequestBody,
	ErrCodeInvalidTimestamp:   ErrMsgInvalidTimestamp,
}

func GetErrorMessage(code string) string {
	if msg, exists := errorMessages[code]; exists {
		return msg
	}
	return ErrMsgInternalError
}

func GetHTTPStatus(code string) int {
	switch code {
	case ErrCodeOutOfWindow, ErrCodeValidation, ErrCodeInvalidRequestBody, ErrCodeInvalidTimestamp:
		return 400
	case ErrCodeWalletNotFound:
		return 404
	case ErrCodeInternalError:
		return 500
	default:
		return 500
	}
}
