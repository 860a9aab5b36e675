package logging

// Field names shared by every log call site so output stays greppable.
const (
	FieldCategory  = "category"
	FieldAmount    = "amount"
	FieldExpenseID = "expense_id"
	FieldIndex     = "index"
	FieldCount     = "count"
	FieldOperation = "operation"
	FieldCommand   = "command"
	FieldReason    = "reason"
	FieldFile      = "file_path"
	FieldBackend   = "backend"
	FieldError     = "error"
)
