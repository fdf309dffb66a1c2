package messages

import "github.com/cmlabs-hris/checkin-bot/internal/domain/chat"

// templates is indexed like supported. Placeholders are chat.Param* keys in braces.
var templates = []map[chat.Outcome]string{
	// zh-TW
	{
		chat.OutcomeAskEmployeeID:     "請輸入您的工號：",
		chat.OutcomeInvalidEmployeeID: "工號格式錯誤，請重新輸入數字工號：",
		chat.OutcomeEmployeeIDTaken:   "工號 {employee_id} 已被綁定，請確認後重新輸入：",
		chat.OutcomeAskName:           "請輸入您的姓名：",
		chat.OutcomeInvalidName:       "姓名不可為空白，請重新輸入：",
		chat.OutcomeBound:             "綁定成功！{name} ({employee_id})",
		chat.OutcomeBindFailed:        "綁定失敗，工號已被使用，請輸入「綁定」重新開始。",
		chat.OutcomeBindRequired:      "您尚未綁定員工資料，請輸入「綁定」開始。",

		chat.OutcomeClockedIn:             "{name}，上班打卡成功！({time})",
		chat.OutcomeAlreadyClockedIn:      "{name}，你今天已經打過上班卡了。",
		chat.OutcomeClockedOut:            "{name}，下班打卡成功！({time})",
		chat.OutcomeClockedOutLate:        "{name}，已超過{threshold}小時，記錄為忘記下班卡。({time})",
		chat.OutcomeAlreadyClockedOut:     "{name}，你今天已經打過下班卡了。",
		chat.OutcomeConfirmForgotCheckout: "查無上班記錄，是否忘記打上班卡？輸入「確認」補記上下班。",
		chat.OutcomeBackfillRecorded:      "{name}，已補記錄上下班。({time})",
		chat.OutcomeNothingToConfirm:      "目前無需要確認的打卡補記錄。",
		chat.OutcomeConfirmationCancelled: "已取消補記錄。",
		chat.OutcomeOutOfRange:            "{name}，您距離打卡地點 {distance} 公尺，超出允許範圍 {radius} 公尺。",
		chat.OutcomeNoLocationData:        "查無您的位置資料，請先分享位置再打卡。",

		chat.OutcomeLocationRecorded: "位置已記錄。",
		chat.OutcomeUnknownIdentity:  "查無綁定資料，請先完成綁定。",
		chat.OutcomeInvalidLocation:  "位置資料格式錯誤。",

		chat.OutcomeHelp:          "請輸入「上班」或「下班」以打卡。",
		chat.OutcomeInternalError: "系統忙碌中，請稍後再試。",
	},
	// vi
	{
		chat.OutcomeAskEmployeeID:     "Vui lòng nhập mã số nhân viên của bạn:",
		chat.OutcomeInvalidEmployeeID: "Mã số nhân viên không hợp lệ, vui lòng nhập lại:",
		chat.OutcomeEmployeeIDTaken:   "Mã số {employee_id} đã được liên kết, vui lòng nhập lại:",
		chat.OutcomeAskName:           "Vui lòng nhập họ tên của bạn:",
		chat.OutcomeInvalidName:       "Họ tên không được để trống, vui lòng nhập lại:",
		chat.OutcomeBound:             "Liên kết thành công! {name} ({employee_id})",
		chat.OutcomeBindFailed:        "Liên kết thất bại, mã số đã được sử dụng. Gõ 'bind' để bắt đầu lại.",
		chat.OutcomeBindRequired:      "Bạn chưa liên kết tài khoản. Gõ 'bind' để bắt đầu.",

		chat.OutcomeClockedIn:             "{name}, chấm công đi làm thành công! ({time})",
		chat.OutcomeAlreadyClockedIn:      "{name}, bạn đã chấm công đi làm hôm nay rồi.",
		chat.OutcomeClockedOut:            "{name}, chấm công tan làm thành công! ({time})",
		chat.OutcomeClockedOutLate:        "{name}, quá {threshold} tiếng, hệ thống tự ghi nhận. ({time})",
		chat.OutcomeAlreadyClockedOut:     "{name}, bạn đã chấm công tan làm hôm nay rồi.",
		chat.OutcomeConfirmForgotCheckout: "Bạn quên chấm công đi làm? Gõ 'Xác nhận' để bổ sung.",
		chat.OutcomeBackfillRecorded:      "{name}, đã xác nhận quên chấm công và ghi nhận lại. ({time})",
		chat.OutcomeNothingToConfirm:      "Không có yêu cầu xác nhận nào.",
		chat.OutcomeConfirmationCancelled: "Đã hủy yêu cầu xác nhận.",
		chat.OutcomeOutOfRange:            "{name}, bạn cách điểm chấm công {distance} mét, vượt quá {radius} mét cho phép.",
		chat.OutcomeNoLocationData:        "Không có dữ liệu vị trí, vui lòng chia sẻ vị trí trước khi chấm công.",

		chat.OutcomeLocationRecorded: "Đã ghi nhận vị trí.",
		chat.OutcomeUnknownIdentity:  "Không tìm thấy liên kết, vui lòng liên kết trước.",
		chat.OutcomeInvalidLocation:  "Dữ liệu vị trí không hợp lệ.",

		chat.OutcomeHelp:          "Vui lòng nhập 'Đi làm' hoặc 'Tan làm' để chấm công.",
		chat.OutcomeInternalError: "Hệ thống đang bận, vui lòng thử lại sau.",
	},
	// en
	{
		chat.OutcomeAskEmployeeID:     "Please enter your employee ID:",
		chat.OutcomeInvalidEmployeeID: "Invalid employee ID, please enter digits only:",
		chat.OutcomeEmployeeIDTaken:   "Employee ID {employee_id} is already bound, please try again:",
		chat.OutcomeAskName:           "Please enter your name:",
		chat.OutcomeInvalidName:       "Name must not be blank, please try again:",
		chat.OutcomeBound:             "Bound successfully! {name} ({employee_id})",
		chat.OutcomeBindFailed:        "Binding failed because the employee ID is taken. Send 'bind' to start over.",
		chat.OutcomeBindRequired:      "You are not bound yet. Send 'bind' to start.",

		chat.OutcomeClockedIn:             "{name}, clocked in at {time}.",
		chat.OutcomeAlreadyClockedIn:      "{name}, you already clocked in today.",
		chat.OutcomeClockedOut:            "{name}, clocked out at {time}.",
		chat.OutcomeClockedOutLate:        "{name}, more than {threshold} hours since clock-in, recorded as a likely missed checkout. ({time})",
		chat.OutcomeAlreadyClockedOut:     "{name}, you already clocked out today.",
		chat.OutcomeConfirmForgotCheckout: "No clock-in found today. Did you forget? Send 'confirm' to record both.",
		chat.OutcomeBackfillRecorded:      "{name}, clock-in and clock-out recorded. ({time})",
		chat.OutcomeNothingToConfirm:      "Nothing to confirm.",
		chat.OutcomeConfirmationCancelled: "Confirmation cancelled.",
		chat.OutcomeOutOfRange:            "{name}, you are {distance} m away, outside the allowed {radius} m.",
		chat.OutcomeNoLocationData:        "No location found, please share your location first.",

		chat.OutcomeLocationRecorded: "Location recorded.",
		chat.OutcomeUnknownIdentity:  "No binding found, please bind first.",
		chat.OutcomeInvalidLocation:  "Invalid location data.",

		chat.OutcomeHelp:          "Send 'clock in' or 'clock out' to record attendance.",
		chat.OutcomeInternalError: "Something went wrong, please try again later.",
	},
}
