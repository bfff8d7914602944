package bridge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Recorder(t *testing.T) {
	ctx := context.Background()
	r := NewRecorder()

	r.OpenLink(ctx, "https://pay.example.com/abc")
	r.AttemptDial(ctx, "*155*2*1*0101010101*4950#")
	assert.True(t, r.CopyToClipboard(ctx, "*155*2*1*0101010101*4950#"))
	r.Error("Something went wrong")

	assert.Equal(t, []Effect{
		{Type: EffectTypeOpenLink, Value: "https://pay.example.com/abc", Target: "https://pay.example.com/abc"},
		{Type: EffectTypeDial, Value: "*155*2*1*0101010101*4950#", Target: "tel:*155*2*1*0101010101*4950%23"},
		{Type: EffectTypeCopy, Value: "*155*2*1*0101010101*4950#"},
		{Type: EffectTypeToast, Level: ToastLevelSuccess, Message: MsgCodeCopied},
		{Type: EffectTypeToast, Level: ToastLevelError, Message: "Something went wrong"},
	}, r.Drain())

	assert.Empty(t, r.Drain())
}

func Test_DryRunBridge(t *testing.T) {
	ctx := context.Background()
	r := NewRecorder()
	b := NewDryRunBridge(r)

	b.AttemptDial(ctx, "*155#")
	b.OpenLink(ctx, "https://pay.example.com/abc")
	assert.True(t, b.CopyToClipboard(ctx, "*155#"))

	assert.Equal(t, []Effect{{Type: EffectTypeToast, Level: ToastLevelSuccess, Message: MsgCodeCopied}}, r.Drain())
}
