package httperr

import "errors"

// ===============================
// Business error codes
// ===============================

const (
	CodeSlotUnavailable     = "slot_unavailable"
	CodeNotFound            = "not_found"
	CodeInvalidScheduleData = "invalid_schedule_data"
	CodeDataUnavailable     = "data_unavailable"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}
