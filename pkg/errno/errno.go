package errno

// Errno defines the error code logic
type Errno struct {
	Code    int
	Message string
}

func (e Errno) Error() string {
	return e.Message
}

// Decode tries to convert an error to Errno
func Decode(err error) (int, string) {
	if err == nil {
		return OK.Code, OK.Message
	}

	switch typed := err.(type) {
	case *Errno:
		return typed.Code, typed.Message
	case Errno:
		return typed.Code, typed.Message
	default:
		return InternalServerError.Code, err.Error()
	}
}

// Is reports whether err carries the same code as target.
func Is(err error, target Errno) bool {
	code, _ := Decode(err)
	return code == target.Code
}

// Common Errors
var (
	OK                  = Errno{Code: 0, Message: "Success"}
	InternalServerError = Errno{Code: 10001, Message: "Internal server error"}
	ErrBind             = Errno{Code: 10002, Message: "Error occurred while binding the request body to the struct"}
	ErrTokenInvalid     = Errno{Code: 10003, Message: "Token invalid"}
	ErrDatabase         = Errno{Code: 10004, Message: "Database error"}
)

// Wallet Connection Errors (20100+)
// 五类错误必须彼此可区分:
// ProviderNotFound 指引用户安装; UserRejected 是用户主动取消; Timeout 是超时;
// InvalidResponse 说明是兼容性 Bug 而非用户行为, 需要单独打日志定位
var (
	ErrProviderNotFound = Errno{Code: 20101, Message: "No compatible wallet provider detected, please install a supported wallet"}
	ErrUserRejected     = Errno{Code: 20102, Message: "Connection request was rejected inside the wallet"}
	ErrTimeout          = Errno{Code: 20103, Message: "Wallet did not respond within the allowed time"}
	ErrInvalidResponse  = Errno{Code: 20104, Message: "Wallet returned a malformed response"}
	ErrNotConnected     = Errno{Code: 20105, Message: "No wallet connected"}
	ErrConnectBusy      = Errno{Code: 20106, Message: "A connection attempt is already in progress"}
	ErrInvalidAccountID = Errno{Code: 20107, Message: "Account id does not match the shard.realm.num syntax"}
)

// Rights / Transaction Errors (20200+)
var (
	ErrRightNotFound  = Errno{Code: 20201, Message: "Right not found"}
	ErrInvalidRight   = Errno{Code: 20202, Message: "Invalid right type"}
	ErrTxSubmitFailed = Errno{Code: 20203, Message: "Transaction submission failed"}
)
