package response

type ResponseCode int

const (
	Success ResponseCode = 100
)

type Response struct {
	Message string       `json:"message"`
	Code    ResponseCode `json:"code"`
	Data    any          `json:"data"`
}

// ErrorBody is the JSON body of every error response.
type ErrorBody struct {
	Code  ResponseCode `json:"code"`
	Error string       `json:"error"`
}

func SuccessResponse(data any) Response {
	return Response{
		Message: "success",
		Code:    Success,
		Data:    data,
	}
}

// ErrorResponse never echoes the detail of an internal error.
func ErrorResponse(err *BusinessError) ErrorBody {
	msg := err.Msg
	if err.Code == Fail {
		msg = MsgInternal
	}
	return ErrorBody{
		Code:  err.Code,
		Error: msg,
	}
}
