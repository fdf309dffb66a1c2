package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIntent(t *testing.T) {
	cases := []struct {
		input string
		want  Intent
	}{
		{"上班", IntentClockIn},
		{"  Đi làm ", IntentClockIn},
		{"CLOCK IN", IntentClockIn},
		{"下班", IntentClockOut},
		{"Tan làm", IntentClockOut},
		{"確認", IntentConfirm},
		{"Xác nhận", IntentConfirm},
		{"bind", IntentBind},
		{"/start", IntentBind},
		{"Alice", IntentNone},
		{"12", IntentNone},
		{"", IntentNone},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ParseIntent(c.input), "ParseIntent(%q)", c.input)
	}
}

func TestNewReply(t *testing.T) {
	r := NewReply(OutcomeClockedIn, ParamName, "Alice", ParamTime, "08:00:00", "dangling")
	assert.Equal(t, OutcomeClockedIn, r.Outcome)
	assert.Equal(t, map[string]string{ParamName: "Alice", ParamTime: "08:00:00"}, r.Params)
}

func TestParseIntent_Decomposed(t *testing.T) {
	// "Xác nhận" with combining accents.
	decomposed := "Xa\u0301c nha\u0302\u0323n"
	assert.Equal(t, IntentConfirm, ParseIntent(decomposed))
}
