package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

// UnknownRevertReason is reported when a failure carries no usable reason
const UnknownRevertReason = "unknown revert"

// userRejectedCode is the EIP-1193 code wallets return when the user declines
const userRejectedCode = 4001

// RevertReason extracts a human readable reason from a failed call or
// transaction. It tries, in order, RPC revert data, the innermost wrapped
// provider message and the error text. It never fails and never returns an
// empty string.
func RevertReason(err error) string {
	if err == nil {
		return UnknownRevertReason
	}

	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		if reason, ok := decodeRevertData(dataErr.ErrorData()); ok {
			return reason
		}
	}

	if reason := trimRevertPrefix(innermost(err).Error()); reason != "" {
		return reason
	}
	if reason := trimRevertPrefix(err.Error()); reason != "" {
		return reason
	}
	return UnknownRevertReason
}

// IsUserRejection reports whether err means the signer declined the request
func IsUserRejection(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrUserRejected) {
		return true
	}

	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) && rpcErr.ErrorCode() == userRejectedCode {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "user rejected") || strings.Contains(msg, "user denied")
}

func decodeRevertData(data interface{}) (string, bool) {
	var raw []byte
	switch v := data.(type) {
	case []byte:
		raw = v
	case string:
		b, err := hexutil.Decode(v)
		if err != nil {
			// some nodes put the reason itself in the data field
			if s := trimRevertPrefix(v); s != "" {
				return s, true
			}
			return "", false
		}
		raw = b
	default:
		return "", false
	}

	if len(raw) == 0 {
		return "", false
	}
	if reason, err := abi.UnpackRevert(raw); err == nil {
		return reason, true
	}
	if len(raw) >= 4 {
		return fmt.Sprintf("custom error %s", hexutil.Encode(raw[:4])), true
	}
	return "", false
}

func innermost(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

func trimRevertPrefix(msg string) string {
	msg = strings.TrimSpace(msg)
	msg = strings.TrimPrefix(msg, "execution reverted:")
	msg = strings.TrimPrefix(msg, "execution reverted")
	return strings.TrimSpace(msg)
}
