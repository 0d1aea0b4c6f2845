/* bot_test.go
 * Contains unit tests for bot.go functions
 */

package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartsWith(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		substring string
		want      bool
	}{
		{"exact match", "hello", "hello", true},
		{"starts with substring", "hello world", "hello", true},
		{"substring later in input", "world hello", "hello", false},
		{"substring not present", "hello world", "goodbye", false},
		{"empty substring", "hello", "", true},
		{"empty input", "", "hello", false},
		{"both empty", "", "", true},
		{"longer substring", "hi", "hello", false},
		{"case sensitive", "Hello", "hello", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, startsWith(tt.input, tt.substring))
		})
	}
}

func TestIsCommand(t *testing.T) {
	assert.True(t, isCommand("$set", "$set"))
	assert.True(t, isCommand("$set a b", "$set"))
	assert.True(t, isCommand("$set\na", "$set"))
	assert.False(t, isCommand("$settings", "$set"))
	assert.False(t, isCommand("$check-bracket", "$check"))
	assert.False(t, isCommand(" $set", "$set"))
}

func TestNewBot_Success(t *testing.T) {
	apiPtr, _ := newTestAPI()

	b, err := NewBot("test_token", apiPtr, nil)

	require.NoError(t, err)
	assert.Equal(t, "test_token", b.BotToken)
	assert.Same(t, apiPtr, b.APIPtr)
	assert.NotNil(t, b.Log)
}

func TestNewBot_EmptyToken(t *testing.T) {
	apiPtr, _ := newTestAPI()

	_, err := NewBot("", apiPtr, nil)

	assert.ErrorContains(t, err, "botToken is required")
}

func TestNewBot_NoAPI(t *testing.T) {
	_, err := NewBot("test_token", nil, nil)

	assert.ErrorContains(t, err, "apiPtr is required")
}
