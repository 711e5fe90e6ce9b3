package apperror

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrNoData          = Error("no records found")
	ErrMultipleRecords = Error("mulitple records found")
	ErrDenied          = Error("not allowed") // caller is not the owner
	ErrAdminRequired   = Error("admin access required")
	ErrRecordChanged   = Error("write conflict")
)
