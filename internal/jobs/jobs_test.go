package jobs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mistica/internal/config"
	"mistica/internal/services"
	"mistica/internal/store"
)

func TestRunner_StartStop(t *testing.T) {
	mem := store.NewMemory()
	r := NewRunner(config.Default().Jobs,
		services.NewCouponService(mem), services.NewChatService(mem))

	require.NoError(t, r.Start())
	r.Stop()
}

func TestRunner_BadSpec(t *testing.T) {
	mem := store.NewMemory()
	cfg := config.Default().Jobs
	cfg.CouponExpirySpec = "every time i feel like it"
	r := NewRunner(cfg, services.NewCouponService(mem), services.NewChatService(mem))

	assert.Error(t, r.Start())
}
