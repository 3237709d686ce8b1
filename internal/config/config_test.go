package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadParsesSessionTTL(t *testing.T) {
	t.Setenv("TOKEN_EXPIRE_TIME", "90m")
	assert.Equal(t, 90*time.Minute, Load().SessionTTL)
}

func TestLoadSessionTTLNeverAndInvalid(t *testing.T) {
	for _, v := range []string{"", "never", "0", "not-a-duration"} {
		t.Setenv("TOKEN_EXPIRE_TIME", v)
		assert.Equal(t, time.Duration(0), Load().SessionTTL, "value %q", v)
	}
}
