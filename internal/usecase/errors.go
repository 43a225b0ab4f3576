package usecase

// Códigos de erro do domínio de prospecção.
const (
	CodeInvalidTransition  = "INVALID_TRANSITION"
	CodeInvalidOutcome     = "INVALID_OUTCOME"
	CodeWriteInFlight      = "WRITE_IN_FLIGHT"
	CodeScriptNotEligible  = "SCRIPT_NOT_ELIGIBLE"
	CodeValidationError    = "VALIDATION_ERROR"
	CodeListNotFound       = "LIST_NOT_FOUND"
	CodePersistenceFailure = "PERSISTENCE_FAILURE"
)

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}

// ErrorCode extrai o código de qualquer erro das usecases ("" se não houver).
func ErrorCode(err error) string {
	if de, ok := err.(*DomainError); ok {
		return de.Code
	}
	if te, ok := err.(*TechnicalError); ok {
		return te.Code
	}
	return ""
}
