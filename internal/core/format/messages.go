package format

import (
	"errors"
	"sort"
	"strings"

	"github.com/srgjo27/ticketing_client/internal/core/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	msgGeneric      = "Something went wrong, please try again"
	msgLoginAgain   = "Your session has expired, please log in again"
	msgForbidden    = "You do not have permission to perform this action"
	msgNotFound     = "The requested resource was not found"
	msgNetwork      = "Cannot reach the server, please check your connection and retry"
	msgPayFailed    = "Payment failed"
	msgPayCancelled = "Payment was cancelled"
	msgPollTimeout  = "Payment confirmation timed out, check your order history before paying again"
	msgExpired      = "Your reservation has expired"
	msgAborted      = "Payment was abandoned"
	msgConflict     = "Payment was received but the order is not confirmed yet, please contact support"
)

func init() {
	vi := language.Vietnamese
	for key, text := range map[string]string{
		msgGeneric:                "Đã có lỗi xảy ra, vui lòng thử lại",
		msgLoginAgain:             "Phiên đăng nhập đã hết hạn, vui lòng đăng nhập lại",
		msgForbidden:              "Bạn không có quyền thực hiện thao tác này",
		msgNotFound:               "Không tìm thấy dữ liệu yêu cầu",
		msgNetwork:                "Không thể kết nối máy chủ, vui lòng kiểm tra mạng và thử lại",
		msgPayFailed:              "Thanh toán thất bại",
		msgPayCancelled:           "Thanh toán đã bị hủy",
		msgPollTimeout:            "Hết thời gian xác nhận thanh toán, vui lòng kiểm tra lịch sử đơn hàng trước khi thanh toán lại",
		msgExpired:                "Đơn giữ vé đã hết hạn",
		msgAborted:                "Thanh toán đã bị bỏ dở",
		msgConflict:               "Đã nhận thanh toán nhưng đơn hàng chưa được xác nhận, vui lòng liên hệ hỗ trợ",
		domain.MsgNameTooShort:    "Họ tên phải có ít nhất 2 ký tự",
		domain.MsgInvalidPhone:    "Số điện thoại không hợp lệ",
		domain.MsgInvalidEmail:    "Email không hợp lệ",
		domain.MsgEmptySelection:  "Vui lòng chọn ít nhất một mục",
		domain.MsgInvalidQuantity: "Số lượng phải lớn hơn hoặc bằng 1",
		domain.MsgEmptyPrompt:     "Nội dung gợi ý không được để trống",
		domain.MsgMissingID:       "Thiếu mã định danh",
	} {
		_ = message.SetString(vi, key, text)
	}
}

func (f *Formatter) text(key string) string {
	return f.printer.Sprintf(message.Key(key, key))
}

// UserMessage renders err for display. Backend-provided messages are shown
// verbatim; everything else maps to a localized message.
func (f *Formatter) UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		keys := make([]string, 0, len(ve.Fields))
		for k := range ve.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, f.text(ve.Fields[k]))
		}
		return strings.Join(parts, "; ")
	}

	if msg, ok := domain.ServerMessage(err); ok {
		return msg
	}

	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return f.text(msgLoginAgain)
	case errors.Is(err, domain.ErrForbidden):
		return f.text(msgForbidden)
	case errors.Is(err, domain.ErrNotFound):
		return f.text(msgNotFound)
	case errors.Is(err, domain.ErrPaymentFailed):
		return f.text(msgPayFailed)
	case errors.Is(err, domain.ErrPaymentCancelled):
		return f.text(msgPayCancelled)
	case errors.Is(err, domain.ErrPollTimeout):
		return f.text(msgPollTimeout)
	case errors.Is(err, domain.ErrOrderExpired):
		return f.text(msgExpired)
	case errors.Is(err, domain.ErrAborted):
		return f.text(msgAborted)
	case errors.Is(err, domain.ErrPaymentConflict):
		return f.text(msgConflict)
	case domain.IsTransient(err):
		return f.text(msgNetwork)
	}
	return f.text(msgGeneric)
}

// FieldMessage localizes a single validation message key.
func (f *Formatter) FieldMessage(key string) string {
	return f.text(key)
}
