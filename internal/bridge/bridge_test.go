package bridge

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_DialTarget(t *testing.T) {
	assert.Equal(t, "tel:*155*2*1*0101010101*4950%23", DialTarget("*155*2*1*0101010101*4950#"))
	assert.Equal(t, "tel:*144*2*1*0707070707*2000%23", DialTarget("*144*2*1*0707070707*2000#"))
	// Only '#' is escaped, the rest of the code is dialed as typed.
	assert.Equal(t, "tel:+22507000000", DialTarget("+22507000000"))
}

func Test_WriterNotifier(t *testing.T) {
	buf := new(bytes.Buffer)
	n := WriterNotifier{Out: buf}

	n.Success("Deposit initiated")
	n.Error("Unable to copy")

	assert.Equal(t, "✔ Deposit initiated\n✘ Unable to copy\n", buf.String())
}
