package lf

import (
	"time"

	"go.uber.org/zap"
)

const (
	FieldModule     = "module"
	FieldStudentID  = "student_id"
	FieldOperation  = "operation"
	FieldEndpoint   = "endpoint"
	FieldStatusCode = "status_code"
	FieldCount      = "count"
	FieldSessionID  = "session_id"
	FieldSequence   = "sequence"
	FieldElapsed    = "elapsed"
)

func Module(module string) zap.Field {
	return zap.String(FieldModule, module)
}

func StudentID(ID string) zap.Field {
	return zap.String(FieldStudentID, ID)
}

func Operation(op string) zap.Field {
	return zap.String(FieldOperation, op)
}

func Endpoint(url string) zap.Field {
	return zap.String(FieldEndpoint, url)
}

func StatusCode(code int) zap.Field {
	return zap.Int(FieldStatusCode, code)
}

func Count(n int) zap.Field {
	return zap.Int(FieldCount, n)
}

func SessionID(ID string) zap.Field {
	return zap.String(FieldSessionID, ID)
}

func Sequence(seq uint64) zap.Field {
	return zap.Uint64(FieldSequence, seq)
}

func Elapsed(d time.Duration) zap.Field {
	return zap.Duration(FieldElapsed, d)
}
