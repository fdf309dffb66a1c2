package chat

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

type Intent int

const (
	IntentNone Intent = iota
	IntentClockIn
	IntentClockOut
	IntentConfirm
	IntentBind
)

// Keywords accepted in either working language, plus latin fallbacks.
var keywords = map[string]Intent{
	"上班":       IntentClockIn,
	"đi làm":   IntentClockIn,
	"clock in": IntentClockIn,
	"/clockin": IntentClockIn,

	"下班":        IntentClockOut,
	"tan làm":   IntentClockOut,
	"clock out": IntentClockOut,
	"/clockout": IntentClockOut,

	"確認":       IntentConfirm,
	"xác nhận": IntentConfirm,
	"confirm":  IntentConfirm,
	"/confirm": IntentConfirm,

	"綁定":     IntentBind,
	"bind":   IntentBind,
	"/bind":  IntentBind,
	"/start": IntentBind,
}

// ParseIntent maps a message to its intent. Input is NFC-normalized first because
// Vietnamese diacritics may arrive decomposed from some clients.
func ParseIntent(text string) Intent {
	return keywords[strings.ToLower(strings.TrimSpace(norm.NFC.String(text)))]
}

// IsAttendanceAction reports whether the intent only makes sense for a bound identity.
func (i Intent) IsAttendanceAction() bool {
	return i == IntentClockIn || i == IntentClockOut || i == IntentConfirm
}
